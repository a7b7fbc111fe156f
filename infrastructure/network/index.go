package network

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NetworkController is a small JSON-over-HTTP client used for calls to the
// capability sidecars.
type NetworkController struct {
	BaseUrl string
	client  *http.Client
}

func (network *NetworkController) httpClient() *http.Client {
	if network.client == nil {
		network.client = &http.Client{Timeout: 30 * time.Second}
	}
	return network.client
}

func (network *NetworkController) Post(path string, headers map[string]string, body interface{}) (*[]byte, *int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s%s", network.BaseUrl, path), bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := network.httpClient().Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	response, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &response, &res.StatusCode, nil
}
