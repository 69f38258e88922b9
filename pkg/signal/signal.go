// Package signal implements the client side of the room signaling channel.
package signal

import (
	"net/url"

	"github.com/goccy/go-json"
	"github.com/openmeet/roomclient/pkg/api"
	"github.com/openmeet/roomclient/pkg/logger"
	"github.com/openmeet/roomclient/pkg/network/websocket"
)

// Client carries JSON packets over a single websocket connection.
// Inbound packets are delivered through OnPacket in arrival order.
type Client struct {
	conn     *websocket.WS
	log      *logger.Logger
	onPacket func(in api.In)
}

// Connect dials the signaling endpoint.
func Connect(address url.URL, log *logger.Logger) (*Client, error) {
	conn, err := websocket.NewClient(address, log)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn: conn,
		log:  log.Extend(log.With().Str("mod", "signal")),
	}
	c.conn.OnMessage = c.handleMessage
	return c, nil
}

func (c *Client) OnPacket(fn func(in api.In)) { c.onPacket = fn }

// Listen starts the connection pumps. OnPacket must be set beforehand.
func (c *Client) Listen() { c.conn.Listen() }

// Send writes a typed packet with the given payload.
func (c *Client) Send(t api.PT, payload any) error {
	r, err := json.Marshal(api.Out{T: t, Payload: payload})
	if err != nil {
		return err
	}
	c.log.Debug().Msgf("→ %v", t)
	c.conn.Write(r)
	return nil
}

// Wait returns a channel closed when the underlying connection is done.
func (c *Client) Wait() chan struct{} { return c.conn.Done }

func (c *Client) Close() { c.conn.Close() }

func (c *Client) handleMessage(message []byte, err error) {
	if err != nil {
		c.log.Error().Err(err).Msg("signal read fail")
		return
	}
	var in api.In
	if err := json.Unmarshal(message, &in); err != nil {
		c.log.Error().Err(err).Msg("not a packet")
		return
	}
	c.log.Debug().Msgf("← %v", in.T)
	if c.onPacket != nil {
		c.onPacket(in)
	}
}
