package websocket

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"

	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l1"
	"github.com/robotalks/cmdlink/pkg/l1/comm"
)

// DefaultPath is where the WebSocket endpoint is served.
const DefaultPath = "/cmdlink"

// Handler creates the http.Handler serving every connection with a Pipe.
func Handler(requester l1.Requester) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		rw := New(conn)
		glog.Infof("websocket connected from %s", rw.RemoteAddr())
		err := comm.NewPipe(rw, requester).Run(conn.Request().Context())
		glog.Infof("websocket from %s closed: %v", rw.RemoteAddr(), err)
	})
}

// Server serves the WebSocket endpoint over HTTP.
type Server struct {
	Listener net.Listener
	Server   *http.Server
}

// Listen creates a Server listening on the TCP address.
func Listen(addr string, requester l1.Requester) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(DefaultPath, Handler(requester))
	return &Server{Listener: ln, Server: &http.Server{Handler: mux}}, nil
}

// Name implements Named.
func (s *Server) Name() string {
	return "websocket:" + s.Listener.Addr().String()
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	return fx.RunWithContextCancel(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Server.Shutdown(shutdownCtx)
	}, func() error {
		err := s.Server.Serve(s.Listener)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
}
