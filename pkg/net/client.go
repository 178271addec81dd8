package net

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/oauth2"
)

const (
	maxIdleConns     = 10
	timeoutInSeconds = 60
	clientAgent      = "ospect"
)

var reqTransport = &http.Transport{
	MaxIdleConns:          maxIdleConns,
	IdleConnTimeout:       timeoutInSeconds * time.Second,
	DisableCompression:    true,
	DisableKeepAlives:     false,
	ResponseHeaderTimeout: time.Duration(timeoutInSeconds) * time.Second,
}

// GetHTTPClient returns a client with the shared transport and a cookie jar.
func GetHTTPClient() (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &http.Client{
		Timeout:   time.Duration(timeoutInSeconds) * time.Second,
		Transport: reqTransport,
		Jar:       jar,
	}, nil
}

// GetOAuthClient returns a client that injects the token as a bearer
// credential on every request.
func GetOAuthClient(ctx context.Context, token string) *http.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{
			TokenType:   "token",
			AccessToken: token,
		},
	)
	return oauth2.NewClient(ctx, ts)
}
