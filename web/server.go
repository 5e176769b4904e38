package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rkjdid/util"
	"github.com/solar3s/goyx5300/yx5300"
	"go.uber.org/zap"
)

type ServerConfig struct {
	ListenAddr        string
	Verbose           bool
	WebsocketInterval util.Duration
}

var DefaultServerConfig = ServerConfig{
	ListenAddr:        "localhost:3636",
	WebsocketInterval: util.Duration(time.Second),
}

type Server struct {
	Config  *Config
	Player  *yx5300.Player
	Watcher *yx5300.Watcher

	version    string
	log        *zap.Logger
	router     *mux.Router
	wsUpgrader *websocket.Upgrader
}

// NewServer registers every endpoint controlling player. gatherer
// is served on /metrics, it may be nil.
func NewServer(version string, player *yx5300.Player, watcher *yx5300.Watcher,
	gatherer prometheus.Gatherer, cfg *Config, log *zap.Logger) *Server {
	if cfg == nil {
		cfg = &DefaultConfig
	}
	if log == nil {
		log = zap.NewNop()
	}
	srv := &Server{
		Config:  cfg,
		Player:  player,
		Watcher: watcher,
		version: version,
		log:     log.Named("web"),
	}
	srv.wsUpgrader = &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	verbose := cfg.Web.Verbose
	srv.router = mux.NewRouter()
	handle := func(path, name string, h http.HandlerFunc, methods ...string) {
		srv.router.Handle(path, Logger(h, name, srv.log, verbose)).Methods(methods...)
	}

	// shh
	srv.router.Handle("/favicon.ico", http.HandlerFunc(NilHandler))

	// transport
	handle("/play", "play", srv.command(player.Play), "POST")
	handle("/pause", "pause", srv.command(player.Pause), "POST")
	handle("/stop", "stop", srv.command(player.Stop), "POST")
	handle("/next", "next", srv.command(player.Next), "POST")
	handle("/prev", "prev", srv.command(player.Prev), "POST")
	handle("/loop/on", "loop", srv.command(player.BeginLoopingTrack), "POST")
	handle("/loop/off", "loop", srv.command(player.EndLoopingTrack), "POST")

	// tracks & folders
	handle("/track/{index}", "track", srv.PlayTrack, "POST")
	handle("/track/{index}/loop", "track-loop", srv.PlayTrackInLoop, "POST")
	handle("/folder/{folder}/loop", "folder-loop", srv.PlayFolderInLoop, "POST")
	handle("/folder/{folder}/{file}", "folder-file", srv.PlayFolderFile, "POST")

	// volume
	handle("/volume/up", "volume", srv.command(player.IncrementVolume), "POST")
	handle("/volume/down", "volume", srv.command(player.DecrementVolume), "POST")
	handle("/volume/{level:-?[0-9]+}", "volume", srv.SetVolume, "POST")
	handle("/mute", "mute", srv.command(player.Mute), "POST")
	handle("/unmute", "unmute", srv.command(player.Unmute), "POST")

	// device
	handle("/sleep", "sleep", srv.command(player.Sleep), "POST")
	handle("/wake", "wake", srv.command(player.Wake), "POST")
	handle("/reset", "reset", srv.command(player.Reset), "POST")
	handle("/debug/{toggle:on|off}", "debug", srv.Debug, "POST")

	// queries
	handle("/query/state", "query", srv.query(yx5300.QueryState), "GET", "HEAD")
	handle("/query/volume", "query", srv.query(yx5300.QueryVolume), "GET", "HEAD")
	handle("/query/track", "query", srv.query(yx5300.QueryCurrentTrack), "GET", "HEAD")
	handle("/query/tracks", "query", srv.query(yx5300.QueryTrackCount), "GET", "HEAD")
	handle("/query/mode", "query", srv.query(yx5300.QueryPlayMode), "GET", "HEAD")
	handle("/snapshot", "snapshot", srv.Snapshot, "GET", "HEAD")
	handle("/websocket", "ws-snapshot", srv.Websocket, "GET", "HEAD")
	handle("/config", "config", srv.PlayerConfig, "GET", "HEAD")
	handle("/version", "version", srv.Version, "GET", "HEAD")

	if gatherer != nil {
		srv.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).
			Methods("GET")
	}
	return srv
}

func (s *Server) Router() http.Handler {
	return s.router
}

// ListenAndServe blocks serving s.Config.Web.ListenAddr.
func (s *Server) ListenAndServe() error {
	httpServer := &http.Server{
		Handler: s.router,
		Addr:    s.Config.Web.ListenAddr,
		// queries may take up to the player's response timeout
		WriteTimeout: time.Duration(s.Config.Player.ResponseTimeout) + 4*time.Second,
		ReadTimeout:  4 * time.Second,
	}
	return httpServer.ListenAndServe()
}

// command wraps a parameterless player operation.
func (s *Server) command(do func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.reply(w, do(), "ok")
	}
}

// query sends cmd and encodes its value as json.
func (s *Server) query(cmd yx5300.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := s.Player.Query(cmd)
		if err != nil {
			s.reply(w, err, nil)
			return
		}
		var res = map[string]interface{}{"command": cmd.String(), "value": v}
		if cmd == yx5300.QueryState {
			res["state"] = yx5300.DeviceState(v)
		}
		s.reply(w, nil, res)
	}
}

func (s *Server) PlayTrack(w http.ResponseWriter, r *http.Request) {
	index, err := byteVar(r, "index")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, s.Player.PlayTrack(index), "ok")
}

func (s *Server) PlayTrackInLoop(w http.ResponseWriter, r *http.Request) {
	index, err := byteVar(r, "index")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, s.Player.PlayTrackInLoop(index), "ok")
}

func (s *Server) PlayFolderInLoop(w http.ResponseWriter, r *http.Request) {
	folder, err := byteVar(r, "folder")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, s.Player.PlayFolderInLoop(folder), "ok")
}

func (s *Server) PlayFolderFile(w http.ResponseWriter, r *http.Request) {
	folder, err := byteVar(r, "folder")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	file, err := byteVar(r, "file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.reply(w, s.Player.PlayFolderFile(folder, file), "ok")
}

// SetVolume accepts any integer, the player clamps it.
func (s *Server) SetVolume(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(mux.Vars(r)["level"])
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid volume: %s", err), http.StatusBadRequest)
		return
	}
	s.reply(w, s.Player.SetVolume(level), "ok")
}

func (s *Server) Debug(w http.ResponseWriter, r *http.Request) {
	on := mux.Vars(r)["toggle"] == "on"
	s.Player.SetDebug(on)
	s.reply(w, nil, map[string]bool{"debug": on})
}

// Snapshot encodes a fresh snapshot as json to w.
func (s *Server) Snapshot(w http.ResponseWriter, r *http.Request) {
	s.reply(w, nil, s.Player.Snapshot())
}

// PlayerConfig encodes current player config.
func (s *Server) PlayerConfig(w http.ResponseWriter, r *http.Request) {
	s.reply(w, nil, s.Player.Config())
}

func (s *Server) Version(w http.ResponseWriter, r *http.Request) {
	s.reply(w, nil, map[string]string{"version": s.version})
}

// Websocket pushes the watcher's last snapshot every interval,
// the interval can be overridden with ?poll=<duration>.
func (s *Server) Websocket(w http.ResponseWriter, r *http.Request) {
	var interval = time.Duration(s.Config.Web.WebsocketInterval)
	if v, ok := r.URL.Query()["poll"]; ok {
		if d, err := time.ParseDuration(v[0]); err == nil && d > 0 {
			interval = d
		}
	}
	if cw, ok := w.(*CustomResponseWriter); ok {
		// the upgrader needs the underlying http.Hijacker
		w = cw.ResponseWriter
	}
	conn, err := s.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("error subscribing to websocket", zap.Error(err))
		return
	}
	if s.Config.Web.Verbose {
		s.log.Info("websocket subscription", zap.Stringer("remote", conn.RemoteAddr()), zap.Duration("poll", interval))
	}

	// the read loop handles close & ping frames from the client,
	// done tells the writer once the client is gone
	done := make(chan struct{})
	go func(conn *websocket.Conn) {
		defer close(done)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}(conn)

	go func(conn *websocket.Conn, s *Server) {
		defer conn.Close()
		for {
			err := conn.WriteJSON(s.Watcher.Last())
			if err == nil {
				select {
				case <-time.After(interval):
					continue
				case <-done:
				}
			}
			if s.Config.Web.Verbose {
				s.log.Info("websocket lost connection", zap.Stringer("remote", conn.RemoteAddr()))
			}
			return
		}
	}(conn, s)
}

// reply encodes v as json, or maps err to an http status.
func (s *Server) reply(w http.ResponseWriter, err error, v interface{}) {
	switch {
	case err == nil:
	case yx5300.IsTimeout(err):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
		return
	case errors.Is(err, yx5300.ErrClosedPort), errors.Is(err, yx5300.ErrNilPlayer):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	default:
		s.log.Error("player error", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func byteVar(r *http.Request, name string) (byte, error) {
	i, err := strconv.ParseUint(mux.Vars(r)[name], 10, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid %s, expecting 0-255: %s", name, mux.Vars(r)[name])
	}
	return byte(i), nil
}
