package deploy

import (
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/confgen-net/confgen/pkg/util"
)

const (
	DefaultPort    = 22
	DefaultTimeout = 30 * time.Second
)

var errPromptTimeout = errors.New("timed out waiting for device prompt")

// ConnectParams carries everything Connect needs to reach a device. Callers
// resolve credentials first (ResolveCredentials) so the transport layer
// itself never consults the environment.
type ConnectParams struct {
	Host         string
	Port         int
	DeviceType   string
	Username     string
	Password     string
	EnableSecret string
	Timeout      time.Duration
}

func (p ConnectParams) addr() string {
	port := p.Port
	if port == 0 {
		port = DefaultPort
	}
	return fmt.Sprintf("%s:%d", p.Host, port)
}

// Session is an interactive CLI session with a device. Reads are pumped
// through a goroutine so command output can be collected with a timeout.
type Session struct {
	host    string
	conn    io.ReadWriteCloser // shell channel
	closer  io.Closer          // underlying transport, closed after the channel
	timeout time.Duration

	reads  chan []byte
	rerr   chan error
	done   chan struct{}
	closed bool
}

func newSession(host string, conn io.ReadWriteCloser, closer io.Closer, timeout time.Duration) *Session {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	s := &Session{
		host:    host,
		conn:    conn,
		closer:  closer,
		timeout: timeout,
		reads:   make(chan []byte),
		rerr:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go s.readLoop()
	return s
}

func (s *Session) readLoop() {
	for {
		buf := make([]byte, 4096)
		n, err := s.conn.Read(buf)
		if n > 0 {
			select {
			case s.reads <- buf[:n]:
			case <-s.done:
				return
			}
		}
		if err != nil {
			select {
			case s.rerr <- err:
			case <-s.done:
			}
			return
		}
	}
}

// hasPrompt reports whether the last line of text looks like an IOS exec
// prompt. "#" is privileged mode, ">" user mode; config prompts such as
// "r1(config)#" end in "#" as well.
func hasPrompt(text string) bool {
	trimmed := strings.TrimRight(text, " ")
	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	if last == "" {
		return false
	}
	return strings.HasSuffix(last, "#") || strings.HasSuffix(last, ">")
}

func promptOrPassword(text string) bool {
	return hasPrompt(text) || strings.Contains(text, "Password:")
}

// readUntil collects shell output until stop matches the accumulated text,
// the transport fails, or the session timeout elapses.
func (s *Session) readUntil(stop func(string) bool) (string, error) {
	var sb strings.Builder
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()
	for {
		select {
		case chunk := <-s.reads:
			sb.Write(chunk)
			if stop(sb.String()) {
				return sb.String(), nil
			}
		case err := <-s.rerr:
			return sb.String(), err
		case <-timer.C:
			return sb.String(), errPromptTimeout
		}
	}
}

// Run sends one command and returns everything the device printed up to the
// next prompt.
func (s *Session) Run(cmd string) (string, error) {
	if _, err := fmt.Fprintln(s.conn, cmd); err != nil {
		return "", util.NewDeployError(s.host, cmd, err)
	}
	out, err := s.readUntil(hasPrompt)
	if err != nil {
		return out, util.NewDeployError(s.host, cmd, err)
	}
	return out, nil
}

// Enable elevates the session to privileged exec mode. Devices already in
// enable mode answer the bare command with a prompt and no password
// exchange, which is accepted as success.
func (s *Session) Enable(secret string) error {
	if _, err := fmt.Fprintln(s.conn, "enable"); err != nil {
		return util.NewDeployError(s.host, "enable", err)
	}
	out, err := s.readUntil(promptOrPassword)
	if err != nil {
		return util.NewDeployError(s.host, "enable", err)
	}
	if !strings.Contains(out, "Password") {
		return nil
	}

	if _, err := fmt.Fprintln(s.conn, secret); err != nil {
		return util.NewDeployError(s.host, "enable", err)
	}
	out, err = s.readUntil(promptOrPassword)
	if err != nil {
		return util.NewDeployError(s.host, "enable", err)
	}
	if strings.Contains(out, "Password") || strings.Contains(out, "denied") {
		return util.NewConnectError(s.host, util.ErrAuthFailed, "enable secret rejected")
	}
	return nil
}

// SendConfig enters configuration mode, sends each line in order and exits
// again. The combined device output is returned for logging. Comment and
// blank lines go through verbatim; the device ignores them.
func (s *Session) SendConfig(lines []string) (string, error) {
	var sb strings.Builder
	cmds := make([]string, 0, len(lines)+2)
	cmds = append(cmds, "configure terminal")
	cmds = append(cmds, lines...)
	cmds = append(cmds, "end")

	for _, cmd := range cmds {
		out, err := s.Run(cmd)
		sb.WriteString(out)
		if err != nil {
			return sb.String(), err
		}
	}
	return sb.String(), nil
}

// SaveConfig persists the running configuration to startup storage.
func (s *Session) SaveConfig() (string, error) {
	return s.Run("write memory")
}

// Close shuts the shell channel and the underlying transport. It is safe on
// failure paths and after a previous Close.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.done)
	err := s.conn.Close()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// shellChannel adapts an SSH session's pipes to io.ReadWriteCloser.
type shellChannel struct {
	in   io.WriteCloser
	out  io.Reader
	sess *ssh.Session
}

func (c *shellChannel) Read(p []byte) (int, error)  { return c.out.Read(p) }
func (c *shellChannel) Write(p []byte) (int, error) { return c.in.Write(p) }

func (c *shellChannel) Close() error {
	c.in.Close()
	return c.sess.Close()
}

// Connect dials the device over SSH and opens an interactive shell with
// paging disabled. Dial failures are classified so callers can tell
// timeouts, rejected credentials and plain connection errors apart with
// errors.Is.
func Connect(params ConnectParams) (*Session, error) {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	config := &ssh.ClientConfig{
		User: params.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(params.Password),
		},
		// Lab gear rarely has stable host keys; verification is skipped
		// like the rest of the tooling around these devices.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	client, err := ssh.Dial("tcp", params.addr(), config)
	if err != nil {
		return nil, classifyDialError(params.Host, err)
	}

	sess, err := client.NewSession()
	if err != nil {
		client.Close()
		return nil, util.NewConnectError(params.Host, util.ErrConnection, err.Error())
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 115200,
		ssh.TTY_OP_OSPEED: 115200,
	}
	if err := sess.RequestPty("vt100", 80, 200, modes); err != nil {
		sess.Close()
		client.Close()
		return nil, util.NewConnectError(params.Host, util.ErrConnection, err.Error())
	}

	stdin, err := sess.StdinPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, util.NewConnectError(params.Host, util.ErrConnection, err.Error())
	}
	stdout, err := sess.StdoutPipe()
	if err != nil {
		sess.Close()
		client.Close()
		return nil, util.NewConnectError(params.Host, util.ErrConnection, err.Error())
	}
	if err := sess.Shell(); err != nil {
		sess.Close()
		client.Close()
		return nil, util.NewConnectError(params.Host, util.ErrConnection, err.Error())
	}

	s := newSession(params.Host, &shellChannel{in: stdin, out: stdout, sess: sess}, client, timeout)

	// Drain the login banner up to the first prompt, then stop the device
	// paginating long output.
	if _, err := s.readUntil(hasPrompt); err != nil {
		s.Close()
		return nil, util.NewConnectError(params.Host, util.ErrConnection, err.Error())
	}
	if _, err := s.Run("terminal length 0"); err != nil {
		s.Close()
		return nil, err
	}

	util.Debugf("ssh session established with %s", params.addr())
	return s, nil
}

// classifyDialError maps transport failures onto the shared error kinds.
func classifyDialError(host string, err error) error {
	msg := err.Error()
	var nerr net.Error
	switch {
	case errors.As(err, &nerr) && nerr.Timeout(), strings.Contains(msg, "i/o timeout"):
		return util.NewConnectError(host, util.ErrTimeout, msg)
	case strings.Contains(msg, "unable to authenticate"):
		return util.NewConnectError(host, util.ErrAuthFailed, msg)
	default:
		return util.NewConnectError(host, util.ErrConnection, msg)
	}
}
