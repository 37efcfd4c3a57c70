package probes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/guilhermetechmakers/autopilot-studio/internal/types"
)

func CheckHTTP(config *types.HTTPProbeConfig) error {
	client := &http.Client{
		Timeout: time.Duration(config.Timeout) * time.Second,
	}

	method := config.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequest(method, config.URL, nil)

	if err != nil {
		return err
	}

	for key, value := range config.Headers {
		req.Header.Add(key, value)
	}

	req = req.WithContext(context.Background())

	resp, err := client.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	expected := config.ExpectedStatus
	if expected == 0 {
		expected = http.StatusOK
	}

	if resp.StatusCode != expected {
		return errors.New("unexpected status code: " + resp.Status)
	}

	return nil
}
