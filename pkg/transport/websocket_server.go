package transport

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/sessamekesh/waygate/internal"
	"github.com/sessamekesh/waygate/internal/obs"
	utils "github.com/sessamekesh/waygate/pkg/util"
	"go.uber.org/zap"
)

const (
	HeaderSteamId       = "x-steam-id"
	HeaderSessionTicket = "x-steam-session-ticket"
	HeaderClientVersion = "x-waygate-client-version"
)

// Accepted is everything the connection handler gets for one upgraded
// socket.
type Accepted struct {
	ConnectionId  uint32
	PeerAddress   string
	ExternalId    string
	SessionTicket string
	ClientVersion string

	Transport *ClientTransport
	Log       *zap.Logger
}

type ConnectionHandler interface {
	// HandleConnection drives one connection until it ends. The socket is
	// closed after it returns.
	HandleConnection(ctx context.Context, accepted Accepted) error
}

type ConnectionHandlerFunc func(ctx context.Context, accepted Accepted) error

func (f ConnectionHandlerFunc) HandleConnection(ctx context.Context, accepted Accepted) error {
	return f(ctx, accepted)
}

type WebsocketServer struct {
	upgrader *websocket.Upgrader

	params  WebsocketServerParams
	handler ConnectionHandler

	connections *internal.ConnectionStore

	log       *zap.Logger
	stringGen *utils.RandomStringGenerator
}

type WebsocketServerParams struct {
	ListenAddress    string
	ListenEndpoint   string
	AllowAllHosts    bool
	AllowlistedHosts []string
	DenylistedHosts  []string

	MaxReadMessageSize int64
	WriteTimeout       time.Duration

	// Shared with whoever reports on live connections. A nil store means
	// no connection limit.
	Connections *internal.ConnectionStore

	Logger *zap.Logger
}

func checkOrigin(r *http.Request, params WebsocketServerParams) bool {
	origin := r.Header.Get("Origin")
	if utils.Contains(origin, params.DenylistedHosts) {
		return false
	}

	// Game clients do not send an Origin.
	if params.AllowAllHosts || origin == "" {
		return true
	}

	return utils.Contains(origin, params.AllowlistedHosts)
}

func CreateWebsocketServer(handler ConnectionHandler, params WebsocketServerParams) *WebsocketServer {
	logger := obs.DefaultLogger(params.Logger)

	if params.ListenEndpoint == "" {
		params.ListenEndpoint = "/"
	}

	connections := params.Connections
	if connections == nil {
		connections = internal.CreateConnectionStore(0)
	}

	return &WebsocketServer{
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return checkOrigin(r, params)
			},
		},
		params:      params,
		handler:     handler,
		connections: connections,

		log:       logger.With(zap.String("handler", "WebSocket")),
		stringGen: utils.CreateRandomStringGenerator(time.Now().UnixMicro()),
	}
}

func (ws *WebsocketServer) Connections() *internal.ConnectionStore {
	return ws.connections
}

func (ws *WebsocketServer) onWsRequest(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := ws.log.With(
		zap.String("wsConnId", ws.stringGen.GetRandomString(6)),
		zap.String("peer", r.RemoteAddr),
	)

	connectionId, err := ws.connections.Open(r.RemoteAddr, time.Now())
	if err != nil {
		log.Warn("Refusing WebSocket request", zap.Error(err))
		http.Error(w, "server is full", http.StatusServiceUnavailable)
		return
	}
	defer ws.connections.Remove(connectionId)

	log = log.With(zap.Uint32("connectionId", connectionId))

	c, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("Failed to upgrade HTTP request to WebSocket connection", zap.Error(&TransportError{Kind: TransportErrorKind_AcceptFailed, Err: err}))
		return
	}

	transport := NewClientTransport(c, ClientTransportParams{
		MaxReadMessageSize: ws.params.MaxReadMessageSize,
		WriteTimeout:       ws.params.WriteTimeout,
		Logger:             log,
	})
	defer transport.Close()

	externalId := r.Header.Get(HeaderSteamId)
	if externalId != "" {
		if err := ws.connections.SetExternalId(connectionId, externalId); err != nil {
			log.Error("Connection vanished from store", zap.Error(err))
			return
		}
	}

	obs.ConnectionsActive.Inc()
	defer obs.ConnectionsActive.Dec()

	log.Info("New WebSocket connection")
	err = ws.handler.HandleConnection(ctx, Accepted{
		ConnectionId:  connectionId,
		PeerAddress:   r.RemoteAddr,
		ExternalId:    externalId,
		SessionTicket: r.Header.Get(HeaderSessionTicket),
		ClientVersion: r.Header.Get(HeaderClientVersion),
		Transport:     transport,
		Log:           log,
	})
	if err != nil {
		log.Error("Connection ended with error", zap.Error(err))
		return
	}
	log.Info("Connection closed")
}

// Handler mounts the game endpoint on a chi router. ctx bounds every
// connection accepted through it.
func (ws *WebsocketServer) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(ws.params.ListenEndpoint, func(w http.ResponseWriter, r *http.Request) {
		ws.onWsRequest(ctx, w, r)
	})
	return r
}

func (ws *WebsocketServer) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              ws.params.ListenAddress,
		Handler:           ws.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()

		ws.log.Sugar().Infof("Starting WebSocket server at %s", ws.params.ListenAddress)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			ws.log.Error("Unexpected WebSocket server close!", zap.Error(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		<-ctx.Done()

		shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownRelease()
		ws.log.Info("Attempting to trigger shutdown of WebSocket server")

		if err := server.Shutdown(shutdownCtx); err != nil {
			ws.log.Error("Failed to gracefully shut down WebSocket server", zap.Error(err))
			return
		}
		ws.log.Info("Successfully shutdown WebSocket server")
	}()

	wg.Wait()

	ws.log.Info("All WebSocket server goroutines finished. Exiting gracefully!")
	return nil
}
