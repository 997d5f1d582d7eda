package stream

import (
	"context"
	"net"
	"sync"

	"github.com/golang/glog"

	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l1"
	"github.com/robotalks/cmdlink/pkg/l1/comm"
)

// Server accepts stream connections and serves each with a Pipe.
type Server struct {
	Listener  net.Listener
	Requester l1.Requester
}

// Listen creates a Server listening on the TCP address.
func Listen(addr string, requester l1.Requester) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{Listener: ln, Requester: requester}, nil
}

// Name implements Named.
func (s *Server) Name() string {
	return "stream:" + s.Listener.Addr().String()
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	defer wg.Wait()
	return fx.RunWithContextCloser(ctx, s.Listener, func() error {
		for {
			conn, err := s.Listener.Accept()
			if err != nil {
				return err
			}
			glog.Infof("stream connected from %s", conn.RemoteAddr())
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := comm.NewPipe(New(conn), s.Requester).Run(ctx)
				glog.Infof("stream from %s closed: %v", conn.RemoteAddr(), err)
			}()
		}
	})
}
