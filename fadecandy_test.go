package lightweaver

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/karlmutch/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oelderoth/LightWeaver-Module/model"
)

// readOPC reads one Open Pixel Control message, a four byte header of channel,
// command and big endian length followed by the pixel data
func readOPC(t *testing.T, conn net.Conn) (channel byte, data []byte) {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	header := make([]byte, 4)
	_, errGo := io.ReadFull(conn, header)
	require.NoError(t, errGo)

	data = make([]byte, int(header[2])<<8|int(header[3]))
	_, errGo = io.ReadFull(conn, data)
	require.NoError(t, errGo)

	return header[0], data
}

func TestFadeCandySendsFrames(t *testing.T) {
	listener, errGo := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, errGo)
	defer listener.Close()

	quitC := make(chan struct{})
	defer close(quitC)

	errorC := make(chan errors.Error, 10)

	gw := &Gateway{Logger: discardLogger()}
	frameC, _ := gw.Start(listener.Addr().String(), 3, 5*time.Millisecond, errorC, quitC)

	conn, errGo := listener.Accept()
	require.NoError(t, errGo)
	defer conn.Close()

	frameC <- &Frame{
		Sequence:   1,
		Pixels:     []model.RgbColor{{255, 0, 0}, {0, 128, 255}},
		Brightness: 255,
	}

	channel, data := readOPC(t, conn)
	assert.Equal(t, byte(3), channel)
	assert.Equal(t, []byte{255, 0, 0, 0, 128, 255}, data)

	// An identical frame is not resent, a changed one is
	frameC <- &Frame{
		Sequence:   2,
		Pixels:     []model.RgbColor{{255, 0, 0}, {0, 128, 255}},
		Brightness: 255,
	}
	time.Sleep(50 * time.Millisecond)
	frameC <- &Frame{
		Sequence:   3,
		Pixels:     []model.RgbColor{{255, 0, 0}, {0, 128, 255}},
		Brightness: 128,
	}

	_, data = readOPC(t, conn)
	assert.Equal(t, []byte{128, 0, 0, 0, 64, 128}, data)

	select {
	case err := <-errorC:
		t.Fatal(err.Error())
	default:
	}
}

func TestFadeCandyReportsDialFailure(t *testing.T) {
	// Grab a free port and release it so nothing is listening there
	listener, errGo := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, errGo)
	server := listener.Addr().String()
	listener.Close()

	quitC := make(chan struct{})
	defer close(quitC)

	errorC := make(chan errors.Error, 10)

	_, subscribeC := startFanOut(discardLogger(), quitC)
	StartFadeCandy(server, 0, 5*time.Millisecond, subscribeC, errorC, quitC)

	select {
	case err := <-errorC:
		assert.Contains(t, err.Error(), server)
	case <-time.After(2 * time.Second):
		t.Fatal("no error reported for an unreachable server")
	}
}
