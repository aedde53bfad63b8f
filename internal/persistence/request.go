package persistence

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/felixbrock/gradeloop/internal/app"
)

type reqConfig struct {
	Method  string
	Url     string
	Headers []string
	Body    []byte
}

func request[T any](ctx context.Context, config reqConfig, expectedResCode int) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, config.Method, config.Url, bytes.NewBuffer(config.Body))

	if err != nil {
		return nil, err
	}

	for i := 0; i < len(config.Headers); i++ {
		headerKV := strings.SplitN(config.Headers[i], ":", 2)
		if len(headerKV) != 2 {
			return nil, errors.New("malformed header proto error")
		}
		req.Header.Add(headerKV[0], strings.TrimSpace(headerKV[1]))
	}

	resp, err := http.DefaultClient.Do(req)

	if err != nil {
		return nil, err
	} else if resp.StatusCode != expectedResCode {
		defer resp.Body.Close()
		return nil, errors.New("unexpected response status code error")
	}

	body, err := app.Read(resp.Body)

	if err != nil {
		return nil, err
	}

	var t *T
	t, err = app.ReadJSON[T](body)

	if err != nil {
		return nil, err
	}

	return t, nil
}
