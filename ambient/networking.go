package ambient

import (
	"net"
	"sync"
)

// NewPipeListener returns an in-process connection pair. The listener hands
// out its end of the pipe once; later Accept calls block until Close.
func NewPipeListener() (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()
	return clientPipe, &pipeListener{
		pipe: listenerPipe,
		done: make(chan struct{}),
	}
}

type pipeListener struct {
	mutex sync.Mutex
	pipe  net.Conn
	once  sync.Once
	done  chan struct{}
}

func (p *pipeListener) Accept() (net.Conn, error) {
	p.mutex.Lock()
	pipe := p.pipe
	p.pipe = nil
	p.mutex.Unlock()

	if pipe != nil {
		return pipe, nil
	}
	<-p.done
	return nil, net.ErrClosed
}

func (p *pipeListener) Close() error {
	p.once.Do(func() { close(p.done) })

	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.pipe != nil {
		return p.pipe.Close()
	}
	return nil
}

func (p *pipeListener) Addr() net.Addr {
	return pipeAddr{}
}

type pipeAddr struct{}

func (pipeAddr) Network() string { return "pipe" }
func (pipeAddr) String() string  { return "pipe" }
