package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IPResolver 外部公网 IP 查询
type IPResolver interface {
	LookupIP(ctx context.Context) (string, error)
}

type IPLookupClient struct {
	endpoint string
	client   *http.Client
}

func NewIPLookupClient(endpoint string, timeout time.Duration) *IPLookupClient {
	return &IPLookupClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (c *IPLookupClient) LookupIP(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("IP 查询服务返回状态码 %d", resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.IP == "" {
		return "", fmt.Errorf("IP 查询响应为空")
	}

	return body.IP, nil
}
