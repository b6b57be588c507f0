package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/interest-ledger/internal/config"
	"github.com/sheikh-saqib/interest-ledger/internal/events/kafka"
	"github.com/sheikh-saqib/interest-ledger/internal/events/noop"
	interfaces "github.com/sheikh-saqib/interest-ledger/internal/interfaces"
	"github.com/sheikh-saqib/interest-ledger/internal/interest"
	"github.com/sheikh-saqib/interest-ledger/internal/ledger"
	"github.com/sheikh-saqib/interest-ledger/internal/models"
	"github.com/sheikh-saqib/interest-ledger/internal/rates"
	"github.com/sheikh-saqib/interest-ledger/internal/statement"
	"github.com/sheikh-saqib/interest-ledger/internal/storage/memory"
	"github.com/sheikh-saqib/interest-ledger/internal/storage/postgres"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	var ledgerStore interfaces.LedgerStore
	var rateStore interfaces.RateStore
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to open postgres", zap.Error(err))
		}
		ledgerStore = postgres.NewPostgresLedgerStore(db)
		rateStore = postgres.NewPostgresRateStore(db)
	} else {
		ledgerStore = memory.NewMemoryLedgerStore()
		rateStore = memory.NewMemoryRateStore()
	}

	var publisher interfaces.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafka.NewPublisher(cfg.KafkaBrokers)
	} else {
		publisher = noop.NewPublisher()
	}

	ledgerService := ledger.NewLedger(ledgerStore, publisher, logger)
	timeline := rates.NewTimeline(rateStore)
	calculator := interest.NewCalculator(ledgerService, timeline)
	assembler := statement.NewAssembler(ledgerService, calculator)

	handle := func(pattern string, h http.HandlerFunc) {
		http.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.New().String()
			w.Header().Set("X-Request-Id", requestID)
			logger.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			h(w, r)
		})
	}

	handle("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	handle("/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req struct {
			Account string          `json:"account"`
			Date    string          `json:"date"` // YYYYMMDD
			Type    string          `json:"type"` // D or W
			Amount  decimal.Decimal `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.Account == "" {
			http.Error(w, "account is a mandatory field", http.StatusBadRequest)
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			http.Error(w, "invalid date, use YYYYMMDD", http.StatusBadRequest)
			return
		}

		var kind models.PostingKind
		switch req.Type {
		case "D", "d":
			kind = models.KindDeposit
		case "W", "w":
			kind = models.KindWithdrawal
		default:
			http.Error(w, "invalid type, use D or W", http.StatusBadRequest)
			return
		}

		posting, balance, err := ledgerService.Post(r.Context(), req.Account, date, kind, req.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(struct {
			ID      string          `json:"id"`
			Balance decimal.Decimal `json:"balance"`
		}{
			ID:      posting.ID,
			Balance: balance,
		})
	})

	handle("/interest-rules", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req struct {
				Date   string          `json:"date"` // YYYYMMDD
				RuleID string          `json:"rule_id"`
				Rate   decimal.Decimal `json:"rate"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}

			date, err := parseDate(req.Date)
			if err != nil {
				http.Error(w, "invalid date, use YYYYMMDD", http.StatusBadRequest)
				return
			}

			if _, err := timeline.DefineRule(r.Context(), date, req.RuleID, req.Rate); err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)

		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		rules, err := timeline.RulesByDate()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(rules)
	})

	handle("/accounts/balance", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		accountID := r.URL.Query().Get("account_id")
		if accountID == "" {
			http.Error(w, "account_id is a mandatory field", http.StatusBadRequest)
			return
		}

		balance, err := ledgerService.Balance(accountID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(struct {
			AccountID string          `json:"account_id"`
			Balance   decimal.Decimal `json:"balance"`
		}{
			AccountID: accountID,
			Balance:   balance,
		})
	})

	handle("/statements", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query()
		accountID := q.Get("account_id")
		if accountID == "" {
			http.Error(w, "account_id is a mandatory field", http.StatusBadRequest)
			return
		}

		month, err := strconv.Atoi(q.Get("month"))
		if err != nil {
			http.Error(w, "invalid month", http.StatusBadRequest)
			return
		}

		asOf := civil.DateOf(time.Now())
		if s := q.Get("as_of"); s != "" {
			if asOf, err = parseDate(s); err != nil {
				http.Error(w, "invalid as_of, use YYYYMMDD", http.StatusBadRequest)
				return
			}
		}

		var stmt models.Statement
		if q.Get("preview") == "true" {
			stmt, err = assembler.BuildPreview(accountID, month, asOf)
		} else {
			stmt, err = assembler.Build(r.Context(), accountID, month, asOf)
		}
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stmt)
	})

	logger.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	if err := http.ListenAndServe(cfg.HTTPAddr, nil); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func parseDate(s string) (civil.Date, error) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidRate),
		errors.Is(err, models.ErrInvalidMonth):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInsufficientFunds):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, models.ErrAccountNotFound),
		errors.Is(err, models.ErrNoApplicableRate):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
