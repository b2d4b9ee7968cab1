package gallery

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"resty.dev/v3"

	"github.com/matjam/lazyimg/internal/srcset"
)

// Client talks to a running gallery server.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "lazyimg")
	return &Client{client: client}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) Status() (*StatusResponse, error) {
	result := StatusResponse{}

	response, err := c.client.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, fmt.Errorf("error querying status: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error querying status: %s", response.Status())
	}
	return &result, nil
}

// SrcSet asks the server for the source-set of an image width pixels wide.
func (c *Client) SrcSet(src string, width, maxWidth int) (*srcset.Set, error) {
	response, err := c.client.R().
		SetQueryParams(map[string]string{
			"src":   src,
			"width": strconv.Itoa(width),
			"max":   strconv.Itoa(maxWidth),
		}).
		Get("/srcset")
	if err != nil {
		return nil, fmt.Errorf("error querying srcset: %w", err)
	}

	if response.StatusCode() != http.StatusOK {
		errResult := ErrorResponse{}
		if json.Unmarshal(response.Bytes(), &errResult) == nil && errResult.Error != "" {
			return nil, fmt.Errorf("error querying srcset: %s", errResult.Error)
		}
		return nil, fmt.Errorf("error querying srcset: %s", response.Status())
	}

	result := srcset.Set{}
	if err := json.Unmarshal(response.Bytes(), &result); err != nil {
		return nil, fmt.Errorf("error decoding srcset: %w", err)
	}
	return &result, nil
}

// Rescan asks the server to reread its image directory and returns the new
// image count.
func (c *Client) Rescan() (int, error) {
	var result struct {
		Images int `json:"images"`
	}

	response, err := c.client.R().SetResult(&result).Post("/rescan")
	if err != nil {
		return 0, fmt.Errorf("error requesting rescan: %w", err)
	}
	if response.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("error requesting rescan: %s", response.Status())
	}
	return result.Images, nil
}
