package remote

import (
	"bytes"
	"image"
	"image/png"
	"net/rpc"

	"github.com/wlcx/hanover-flipdot/pkg/proto"
)

func New(addr string) (*Client, error) {
	client, err := rpc.DialHTTP("tcp", addr)
	if err != nil {
		return nil, err
	}

	c := &Client{rpc: client}
	var size SizeResponse
	if err := client.Call("Service.Size", EmptyRequest{}, &size); err != nil {
		_ = client.Close()
		return nil, err
	}
	c.size = image.Pt(size.Width, size.Height)

	return c, nil
}

type Client struct {
	rpc  *rpc.Client
	size image.Point
}

var _ proto.Control = (*Client)(nil)

func (c *Client) Size() image.Point {
	return c.size
}

func (c *Client) Clear() error {
	return c.rpc.Call("Service.Clear", EmptyRequest{}, &EmptyResponse{})
}

func (c *Client) Draw(image image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image); err != nil {
		return err
	}

	return c.rpc.Call("Service.Draw", &DrawRequest{Image: buf.Bytes()}, &EmptyResponse{})
}

func (c *Client) Frame(frame []byte) error {
	return c.rpc.Call("Service.Frame", &FrameRequest{Frame: frame}, &EmptyResponse{})
}

func (c *Client) Close() error {
	return c.rpc.Close()
}
