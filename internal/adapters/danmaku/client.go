// Package danmaku fetches and decodes the public Bilibili comment stream for a video cid
package danmaku

import (
	"compress/flate"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	perr "spoilerguard/internal/platform/errors"
	"spoilerguard/internal/platform/logger"

	"github.com/go-resty/resty/v2"
)

const (
	baseURLDefault = "https://comment.bilibili.com"
	defaultTimeout = 15 * time.Second
	defaultUA      = "spoilerguard-analyze"
	maxDocBytes    = 32 << 20
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client downloads danmaku XML documents
type Client struct {
	http *resty.Client
	log  logger.Logger
}

// NewClient creates a Client with defaults applied
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	rc := resty.New().
		SetBaseURL(strings.TrimRight(o.BaseURL, "/")).
		SetHeader("User-Agent", o.UserAgent).
		SetTimeout(o.Timeout)

	return &Client{http: rc, log: *logger.Named("danmaku")}
}

// Fetch downloads and parses the comment document for cid
func (c *Client) Fetch(ctx context.Context, cid int64) ([]Comment, error) {
	if cid <= 0 {
		return nil, perr.InvalidArgf("cid must be positive")
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get("/" + strconv.FormatInt(cid, 10) + ".xml")
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "danmaku fetch failed")
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, perr.NotFoundf("danmaku for cid %d not found", cid)
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, perr.TooManyRequestsf("danmaku fetch rate limited")
	case resp.StatusCode() != http.StatusOK:
		return nil, perr.Unavailablef("danmaku fetch status=%d", resp.StatusCode())
	}

	// the comment host answers with raw deflate regardless of Accept-Encoding
	var r io.Reader = io.LimitReader(body, maxDocBytes)
	if strings.EqualFold(resp.Header().Get("Content-Encoding"), "deflate") {
		fr := flate.NewReader(r)
		defer func() { _ = fr.Close() }()
		r = io.LimitReader(fr, maxDocBytes)
	}

	out, skipped, err := Parse(r)
	if err != nil {
		return nil, err
	}
	c.log.Info().Int64("cid", cid).Int("comments", len(out)).Int("skipped", skipped).Msg("danmaku fetched")
	return out, nil
}
