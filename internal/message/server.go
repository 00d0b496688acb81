package message

import (
	"context"
	"errors"
	"fmt"
	"github.com/callebjorkell/charlcd/screen"
	log "github.com/sirupsen/logrus"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// Server accepts messages over HTTP and shows them on the display. It owns the lock that
// keeps concurrent requests (and the button handler, through Clear) from interleaving
// bytes on the display.
type Server struct {
	mu      sync.Mutex
	display *screen.Display
	server  http.Server
}

func NewServer(addr string, display *screen.Display) *Server {
	s := &Server{
		display: display,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", messageForm)
	mux.HandleFunc("/message", s.messageHandler)
	mux.HandleFunc("/clear", s.clearHandler)
	s.server = http.Server{Addr: addr, Handler: mux}
	return s
}

// Show clears the display and writes msg on the first line.
func (s *Server) Show(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.display.Cls(); err != nil {
		return err
	}
	return s.display.Write(msg)
}

func (s *Server) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.display.Cls()
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	log.Debug("Closing message server...")
	return s.server.Shutdown(ctx)
}

// Listen blocks until the server is closed.
func (s *Server) Listen() error {
	log.Infof("Starting server on %v. Waiting for messages.", s.server.Addr)
	if ip := defaultOutboundIP(); ip != "" {
		if err := s.Show(fmt.Sprintf("@%v", ip)); err != nil {
			log.Warn("Unable to show address: ", err)
		}
	}

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

const form = `
<html>
<body style="font-family:sans-serif; font-size:12pt; background-color: #121212; color: #eee;">
<br><br><br>
<center>
<h1>Display message</h1>
<br>
<form action="/message" method="post" autocomplete="off" novalidate>
<label for="message">Message</label>
<input type="text" name="message" size="40"/>
<br><br>
<input type="submit" value="Show"/>
</form>
<form action="/clear" method="post">
<input type="submit" value="Clear"/>
</form>
</center>
</body>
</html>
`

func messageForm(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	io.WriteString(w, form)
}

const shown = `
<html>
<body style="font-family:sans-serif; font-size:12pt; background-color: #121212; color: #eee;">
<br><br><br><center>
<h1>Done</h1>
<br><br>
<p><a href="/" style="color: #eee;">Back</a></p>
</center></body>
</html>
`

func (s *Server) messageHandler(w http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if request.Header.Get("Content-Type") != "application/x-www-form-urlencoded" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := request.ParseForm()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if !request.Form.Has("message") {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	msg := request.Form.Get("message")
	log.Infof("Showing message %q", msg)
	if err := s.Show(msg); err != nil {
		log.Warn("Unable to show message: ", err)
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	io.WriteString(w, shown)
}

func (s *Server) clearHandler(w http.ResponseWriter, request *http.Request) {
	if request.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	log.Info("Clearing display")
	if err := s.Clear(); err != nil {
		log.Warn("Unable to clear display: ", err)
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	io.WriteString(w, shown)
}

func defaultOutboundIP() string {
	// Use this little trick to fake an outbound UDP connection (any IP is fine) and read the IP of the interface that
	// this machine would use as the default route to make that connection.
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)

	return localAddr.IP.String()
}
