package main

import (
    "compress/gzip"
    "context"
    "encoding/json"
    "errors"
    "io"
    "log"
    "net/http"
    "os"
    "os/signal"
    "strings"
    "sync"
    "syscall"
    "time"

    "github.com/joho/godotenv"

    "stocklookup/internal/aggregate"
    "stocklookup/internal/config"
    "stocklookup/internal/finnhub"
    "stocklookup/internal/httpx"
    "stocklookup/internal/stock"
    "stocklookup/internal/viewmodel"
)

type lookupResponse struct {
    Snapshot stock.Snapshot    `json:"snapshot"`
    Display  viewmodel.Display `json:"display"`
}

type errorResponse struct {
    Error string `json:"error"`
    Kind  string `json:"kind"`
}

func main() {
    // .env is optional; real environment variables win.
    _ = godotenv.Load()

    cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
    if err != nil { log.Fatalf("config: %v", err) }
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    httpClient := httpx.New(time.Duration(cfg.Finnhub.TimeoutSec)*time.Second, cfg.Finnhub.UserAgent)
    fh, err := finnhub.NewClient(
        cfg.Finnhub.APIKey,
        finnhub.WithHTTPClient(httpClient),
        finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
    )
    if err != nil { log.Fatalf("finnhub client: %v", err) }
    agg := aggregate.New(fh, fh, aggregate.WithBranchTimeout(time.Duration(cfg.Finnhub.TimeoutSec)*time.Second))
    requestTimeout := time.Duration(cfg.Server.RequestTimeoutSec) * time.Second

    mux := http.NewServeMux()
    mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
        w.WriteHeader(http.StatusOK)
        _, _ = w.Write([]byte("ok"))
    })
    mux.HandleFunc("/api/lookup", func(w http.ResponseWriter, r *http.Request) {
        if r.Method != http.MethodGet {
            http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
            return
        }
        ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
        defer cancel()
        handleLookup(w, r.WithContext(ctx), agg)
    })

    port := cfg.Server.Port
    srv := &http.Server{
        Addr:              ":" + port,
        Handler:           withJSONHeaders(withGzip(recoverPanic(mux))),
        ReadHeaderTimeout: 5 * time.Second,
        ReadTimeout:       15 * time.Second,
        WriteTimeout:      requestTimeout + 5*time.Second,
        IdleTimeout:       60 * time.Second,
    }

    go func() {
        log.Printf("server listening on :%s", port)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Fatalf("server: %v", err)
        }
    }()

    // graceful shutdown
    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()
    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    _ = srv.Shutdown(shutdownCtx)
}

func handleLookup(w http.ResponseWriter, r *http.Request, looker viewmodel.Looker) {
    symbol := r.URL.Query().Get("symbol")
    snap, err := looker.Lookup(r.Context(), symbol)
    if err != nil {
        status := statusFor(err)
        log.Printf("lookup %q: %v", symbol, err)
        writeJSON(w, status, errorResponse{Error: err.Error(), Kind: stock.KindOf(err).String()})
        return
    }
    writeJSON(w, http.StatusOK, lookupResponse{Snapshot: snap, Display: viewmodel.Format(snap)})
}

func statusFor(err error) int {
    switch stock.KindOf(err) {
    case stock.KindInvalidSymbol:
        return http.StatusBadRequest
    case stock.KindTransport, stock.KindNoData, stock.KindDecodeFailure:
        return http.StatusBadGateway
    default:
        return http.StatusInternalServerError
    }
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.WriteHeader(status)
    enc := json.NewEncoder(w)
    enc.SetEscapeHTML(false)
    _ = enc.Encode(v)
}

// withJSONHeaders marks every response as JSON and answers CORS preflights.
func withJSONHeaders(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json; charset=utf-8")
        w.Header().Set("Access-Control-Allow-Origin", "*")
        w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
        w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
        if r.Method == http.MethodOptions {
            w.WriteHeader(http.StatusNoContent)
            return
        }
        next.ServeHTTP(w, r)
    })
}

// withGzip gzips the body when Accept-Encoding lists gzip. Writers are pooled.
func withGzip(next http.Handler) http.Handler {
    var gzPool = sync.Pool{New: func() any {
        w, _ := gzip.NewWriterLevel(io.Discard, gzip.BestSpeed)
        return w
    }}
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
            next.ServeHTTP(w, r)
            return
        }
        gz := gzPool.Get().(*gzip.Writer)
        gz.Reset(w)
        defer func() {
            _ = gz.Close()
            gz.Reset(io.Discard)
            gzPool.Put(gz)
        }()
        w.Header().Set("Content-Encoding", "gzip")
        w.Header().Add("Vary", "Accept-Encoding")
        next.ServeHTTP(gzipResponseWriter{ResponseWriter: w, Writer: gz}, r)
    })
}

type gzipResponseWriter struct {
    http.ResponseWriter
    Writer io.Writer
}

func (g gzipResponseWriter) Write(b []byte) (int, error) {
    return g.Writer.Write(b)
}

// recoverPanic logs a handler panic and answers 500.
func recoverPanic(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                log.Printf("panic serving %s: %v", r.URL.Path, rec)
                http.Error(w, "internal server error", http.StatusInternalServerError)
            }
        }()
        next.ServeHTTP(w, r)
    })
}
