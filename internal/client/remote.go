package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// RemoteBackend 已登录时经由 REST 接口访问的服务端购物车
type RemoteBackend struct {
	baseURL string
	session *Session
	http    *http.Client
}

// NewRemoteBackend 创建远端购物车后端
// baseURL 形如 http://host:port/api
func NewRemoteBackend(baseURL string, session *Session, httpClient *http.Client) *RemoteBackend {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &RemoteBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    httpClient,
	}
}

type cartResponse struct {
	Items []CartLine `json:"items"`
}

type mutateRequest struct {
	Item     Product `json:"item"`
	Quantity int     `json:"quantity"`
}

// doJSON 发送请求并解码响应；2xx 之外的状态码转换为 StatusError
func (b *RemoteBackend) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := b.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(data, &apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Read 读取服务端购物车
func (b *RemoteBackend) Read(ctx context.Context) ([]CartLine, error) {
	var resp cartResponse
	if err := b.doJSON(ctx, http.MethodGet, "/cart", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []CartLine{}
	}
	return resp.Items, nil
}

// Mutate 按增量调整服务端购物车行，返回服务端权威行序列
func (b *RemoteBackend) Mutate(ctx context.Context, product Product, delta int) ([]CartLine, error) {
	var resp cartResponse
	req := mutateRequest{Item: product, Quantity: delta}
	if err := b.doJSON(ctx, http.MethodPost, "/cart", req, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []CartLine{}
	}
	return resp.Items, nil
}

// Clear 清空服务端购物车
func (b *RemoteBackend) Clear(ctx context.Context) error {
	return b.doJSON(ctx, http.MethodDelete, "/cart", nil, nil)
}

// SubmitOrder 提交订单，失败时不自动重试
func (b *RemoteBackend) SubmitOrder(ctx context.Context, draft OrderDraft) error {
	return b.doJSON(ctx, http.MethodPost, "/orders", draft, nil)
}
