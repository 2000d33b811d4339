package source

import "context"

// SSH displays the stdout of a command run on a remote host. Connections come
// from a Pool; a failed exec discards the connection so the next read redials.
type SSH struct {
	Host    string
	Command string

	pool  *Pool
	owned bool
}

// NewSSH creates an SSH source drawing connections from pool. A nil pool
// gives the source a private one.
func NewSSH(host, command string, pool *Pool) *SSH {
	if pool == nil {
		return &SSH{Host: host, Command: command, pool: NewPool(nil, 0), owned: true}
	}
	return &SSH{Host: host, Command: command, pool: pool}
}

// Read runs the command. A non-zero exit is an error; the connection is kept.
func (s *SSH) Read(ctx context.Context) (string, error) {
	conn, err := s.pool.Get(ctx, s.Host)
	if err != nil {
		return "", err
	}

	out, code, err := conn.Exec(ctx, s.Command)
	if err != nil {
		s.pool.Discard(s.Host, conn)
		return "", err
	}
	if code != 0 {
		return "", exitFailure(s.Command, code, "")
	}
	return cleanText(out), nil
}

// Close closes the source's private pool. Shared pools are left to their owner.
func (s *SSH) Close() error {
	if !s.owned {
		return nil
	}
	return s.pool.Close()
}
