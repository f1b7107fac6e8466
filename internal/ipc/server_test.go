package ipc

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibrid/mywm/internal/wm"
)

func startTestServer(t *testing.T) (*Server, chan wm.CommandRequest, string) {
	t.Helper()
	commands := make(chan wm.CommandRequest, 8)
	s := NewServer(commands, nil)
	sock := filepath.Join(t.TempDir(), "mywm.sock")
	require.NoError(t, s.Listen(sock))
	t.Cleanup(func() { s.Close() })
	return s, commands, sock
}

// autoReply services commands as a fake reactor would: OK for "focus right",
// ERR unknown otherwise.
func autoReply(commands chan wm.CommandRequest) {
	go func() {
		for req := range commands {
			if req.Line == "focus right" {
				req.Reply <- "OK"
			} else {
				req.Reply <- "ERR unknown"
			}
		}
	}()
}

func TestRequestReplyRoundTrip(t *testing.T) {
	_, commands, sock := startTestServer(t)
	autoReply(commands)

	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("focus right\n"))
	require.NoError(t, err)

	reply, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "OK\n", reply)
}

func TestUnknownVerbRepliesErr(t *testing.T) {
	_, commands, sock := startTestServer(t)
	autoReply(commands)

	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("bogus\n"))
	require.NoError(t, err)

	reply, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "ERR unknown\n", reply)
}

func TestBroadcastReachesPureSubscriber(t *testing.T) {
	s, commands, sock := startTestServer(t)
	autoReply(commands)

	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	defer conn.Close()

	// A client that never sends a command is still a subscriber, per
	// spec.md §6's "a client that sends no commands is a pure subscriber."
	time.Sleep(20 * time.Millisecond) // let the accept loop register it
	s.Broadcast("workspace", WorkspacePayload{Active: 1, Occupied: []int{1}})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, `{"event":"workspace"`))
}

func TestSlowSubscriberIsDroppedNotBlocking(t *testing.T) {
	s, commands, sock := startTestServer(t)
	autoReply(commands)

	conn, err := net.Dial("unix", sock)
	require.NoError(t, err)
	defer conn.Close()
	time.Sleep(20 * time.Millisecond)

	// Flood well past outboxDepth without ever reading; Broadcast must
	// return promptly rather than blocking on the full channel.
	done := make(chan struct{})
	go func() {
		for i := 0; i < outboxDepth*4; i++ {
			s.Broadcast("bar-toggle", BarTogglePayload{Visible: i%2 == 0})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a slow subscriber instead of dropping it")
	}

	s.mu.Lock()
	n := len(s.subs)
	s.mu.Unlock()
	assert.Equal(t, 0, n)
}
