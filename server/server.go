package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/centinela-io/centinela/internal/models"
	"github.com/centinela-io/centinela/pkg/config"
	"github.com/centinela-io/centinela/pkg/llm"
	"github.com/centinela-io/centinela/pkg/ner"
	"github.com/centinela-io/centinela/pkg/pipeline"
	"github.com/centinela-io/centinela/pkg/screening"
	"github.com/centinela-io/centinela/pkg/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

// Message is one frame on the wire, in both directions. Incoming frames
// carry type "query"; outgoing types are status, answer, entities,
// screening, done and error.
type Message struct {
	Type    string      `json:"type"`
	Content string      `json:"content"`
	Data    interface{} `json:"data,omitempty"`
}

// conn wraps a websocket connection with a write lock: outcomes arrive
// from the pipeline while status frames may still be in flight.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(msgType, content string, data interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ws.WriteJSON(Message{Type: msgType, Content: content, Data: data}); err != nil {
		log.Printf("error sending message: %v", err)
	}
}

type Server struct {
	cfg         *config.Config
	pipeline    *pipeline.Pipeline
	vectorStore *store.VectorStore
}

func New(cfg *config.Config) (*Server, error) {
	chatEngine, err := llm.NewWithConfig(llm.ChatConfig{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Language:    cfg.LLM.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize chat engine: %v", err)
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:  cfg.Embedding.Model,
		APIKey: cfg.LLM.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %v", err)
	}

	vectorStore, err := store.NewWithConfig(store.VectorStoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  cfg.Database.VectorDim,
		BatchSize:  cfg.Database.BatchSize,
	}, embedder)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize vector store: %v", err)
	}

	extractor, err := ner.NewWithConfig(ner.ClientConfig{
		BaseURL:        cfg.NER.BaseURL,
		Timeout:        time.Duration(cfg.NER.TimeoutSeconds) * time.Second,
		ScoreThreshold: cfg.NER.ScoreThreshold,
	})
	if err != nil {
		vectorStore.Close()
		return nil, fmt.Errorf("failed to initialize NER client: %v", err)
	}

	screener, err := screening.NewWithConfig(screening.ClientConfig{
		BaseURL:        cfg.Screening.BaseURL,
		Timeout:        time.Duration(cfg.Screening.TimeoutSeconds) * time.Second,
		RateLimit:      cfg.Screening.RateLimit,
		MaxConcurrency: cfg.Screening.MaxConcurrency,
	})
	if err != nil {
		vectorStore.Close()
		return nil, fmt.Errorf("failed to initialize yente client: %v", err)
	}

	p := pipeline.New(pipeline.Config{
		Screening: screening.Options{
			Dataset: cfg.Screening.Dataset,
			Limit:   cfg.Screening.Limit,
		},
	}, embedder, vectorStore, chatEngine, extractor, screener)

	return &Server{
		cfg:         cfg,
		pipeline:    p,
		vectorStore: vectorStore,
	}, nil
}

func (s *Server) Close() {
	if s.vectorStore != nil {
		s.vectorStore.Close()
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	session := uuid.NewString()
	log.Printf("session %s connected from %s", session, r.RemoteAddr)

	c := &conn{ws: ws}

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			log.Printf("session %s closed: %v", session, err)
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			c.send("error", fmt.Sprintf("invalid message: %v", err), nil)
			continue
		}

		if msg.Type != "query" || strings.TrimSpace(msg.Content) == "" {
			c.send("error", "expected a non-empty frame of type 'query'", nil)
			continue
		}

		s.handleQuery(r.Context(), c, session, msg.Content)
	}
}

func (s *Server) handleQuery(ctx context.Context, c *conn, session, query string) {
	log.Printf("session %s query: %s", session, query)

	events := pipeline.Events{
		OnStatus: func(msg string) {
			c.send("status", msg, nil)
		},
		OnAnswer: func(answer string, docs []models.Document) {
			c.send("answer", answer, nil)
		},
		OnEntities: func(set models.EntitySet) {
			c.send("entities", "", set)
		},
		OnOutcome: func(outcome pipeline.Outcome) {
			c.send("screening", outcome.Name, outcome)
		},
	}

	if err := s.pipeline.Ask(ctx, query, events); err != nil {
		c.send("error", err.Error(), nil)
		return
	}

	c.send("done", "", nil)
}

// Run serves the websocket endpoint and a health check until the listener
// fails.
func (s *Server) Run(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if port == "" {
		port = "8080"
	}

	log.Printf("starting WebSocket server on port %s", port)
	return http.ListenAndServe(":"+port, mux)
}
