package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	mandel "github.com/marben/mandel_bands"
)

// maxImageBytes bounds the binary message the client accepts.
const maxImageBytes = 1 << 30

var errRemote = errors.New("server refused render")

// fetch sends one render request over an open connection and returns the
// encoded image the server answers with.
func fetch(ctx context.Context, c *websocket.Conn, req mandel.RenderRequest) (mandel.RenderReply, []byte, error) {
	if err := wsjson.Write(ctx, c, req); err != nil {
		return mandel.RenderReply{}, nil, fmt.Errorf("send request: %w", err)
	}

	var reply mandel.RenderReply
	if err := wsjson.Read(ctx, c, &reply); err != nil {
		return reply, nil, fmt.Errorf("read reply: %w", err)
	}
	if reply.Error != "" {
		return reply, nil, fmt.Errorf("%w: %s", errRemote, reply.Error)
	}

	typ, img, err := c.Read(ctx)
	if err != nil {
		return reply, nil, fmt.Errorf("read image: %w", err)
	}
	if typ != websocket.MessageBinary {
		return reply, nil, fmt.Errorf("expected binary image message, got %v", typ)
	}
	if len(img) != reply.Size {
		return reply, nil, fmt.Errorf("got %d image bytes, server announced %d", len(img), reply.Size)
	}
	return reply, img, nil
}

// dial connects to the render server at url (ws:// or http://).
func dial(ctx context.Context, url string) (*websocket.Conn, error) {
	c, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}
	c.SetReadLimit(maxImageBytes)
	return c, nil
}
