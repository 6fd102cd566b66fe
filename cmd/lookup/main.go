package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log"
    "os"
    "time"

    "github.com/joho/godotenv"

    "stocklookup/internal/aggregate"
    "stocklookup/internal/config"
    "stocklookup/internal/finnhub"
    "stocklookup/internal/httpx"
    "stocklookup/internal/viewmodel"
)

func main() {
    var symbol string
    var configPath string
    var timeout int
    var asJSON bool

    _ = godotenv.Load()

    flag.StringVar(&symbol, "symbol", os.Getenv("SYMBOL"), "ticker symbol to look up (e.g. AAPL)")
    flag.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json or config.yaml (optional)")
    flag.IntVar(&timeout, "timeout", 0, "per-request timeout seconds (overrides config)")
    flag.BoolVar(&asJSON, "json", false, "print the final state as JSON")
    flag.Parse()
    if symbol == "" && flag.NArg() > 0 { symbol = flag.Arg(0) }

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if timeout > 0 { cfg.Finnhub.TimeoutSec = timeout }
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    branchTimeout := time.Duration(cfg.Finnhub.TimeoutSec) * time.Second
    fh, err := finnhub.NewClient(
        cfg.Finnhub.APIKey,
        finnhub.WithHTTPClient(httpx.New(branchTimeout, cfg.Finnhub.UserAgent)),
        finnhub.WithBaseURL(cfg.Finnhub.BaseURL),
    )
    if err != nil { log.Fatalf("finnhub client: %v", err) }

    model := viewmodel.New(aggregate.New(fh, fh, aggregate.WithBranchTimeout(branchTimeout)))
    model.OnChange = func(s viewmodel.State) {
        if s.Loading { log.Printf("looking up %q...", s.Symbol) }
    }
    model.SetSymbol(symbol)

    ctx, cancel := context.WithTimeout(context.Background(), 2*branchTimeout)
    defer cancel()
    <-model.Fetch(ctx)

    state := model.State()
    if asJSON {
        enc := json.NewEncoder(os.Stdout)
        enc.SetIndent("", "  ")
        _ = enc.Encode(state)
    } else {
        render(os.Stdout, state)
    }
    if state.HasError { os.Exit(1) }
}

func render(w io.Writer, s viewmodel.State) {
    if s.HasError {
        fmt.Fprintf(w, "Error: %s\n", s.ErrorMessage)
        return
    }
    if s.Snapshot == nil { return }
    d := viewmodel.Format(*s.Snapshot)
    sign := "▲"
    if !d.Positive { sign = "▼" }
    fmt.Fprintf(w, "%s (%s)\n", d.CompanyName, d.Symbol)
    fmt.Fprintf(w, "Current Price: $%s\n", d.CurrentPrice)
    fmt.Fprintf(w, "Change: %s $%s (%s%%)\n", sign, d.PriceChange, d.PercentChange)
}
