/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the canteen access-control server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Read environment configuration
  2. Load the employee roster (immutable after this point)
  3. Load the weekly menu
  4. Open the SQLite admission log
  5. Build the handler and router
  6. Start the daily reset scheduler
  7. Start the HTTP server with graceful shutdown

ENVIRONMENT:
  CANTINA_DB                    SQLite database path (required)
  PORT                          HTTP listen port (default: 3000)
  SENHA_ADMIN_GERAL             Report-viewing admin secret
  SENHA_ADMIN_ZERAR_RELATORIO   Manual reset secret (distinct)
  CANTINA_MATRICULAS            Roster file (default: matriculas.csv)
  CANTINA_CARDAPIO              Weekly menu TOML file (optional)
  CANTINA_RELATORIOS            Reports directory (default: relatorios)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop the reset scheduler
  2. Stop accepting new connections
  3. Wait for active requests to complete (30s timeout)
  4. Close the database connection
  5. Exit

EXAMPLES:
  CANTINA_DB=./data/cantina.db SENHA_ADMIN_GERAL=segredo ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/refeitorio/controle-acesso/access"
	"github.com/refeitorio/controle-acesso/api"
	"github.com/refeitorio/controle-acesso/menu"
	"github.com/refeitorio/controle-acesso/roster"
	"github.com/refeitorio/controle-acesso/store/sqlite"
)

func main() {
	// Configuration (environment-driven)
	dbPath := os.Getenv("CANTINA_DB")
	if dbPath == "" {
		log.Fatal("Erro: a variável de ambiente CANTINA_DB não está definida.")
	}

	port := 3000
	if p := os.Getenv("PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("Erro: PORT inválida %q: %v", p, err)
		}
		port = parsed
	}

	rosterPath := os.Getenv("CANTINA_MATRICULAS")
	if rosterPath == "" {
		rosterPath = "matriculas.csv"
	}

	// Load the roster (read-only process-wide state from here on)
	employees, err := roster.Load(rosterPath)
	if err != nil {
		log.Fatalf("Erro ao ler o arquivo de matrículas: %v", err)
	}
	log.Printf("Carregadas %d matrículas para a memória.", employees.Len())

	// Load the weekly menu (falls back to the built-in menu)
	cardapio, err := menu.Load(os.Getenv("CANTINA_CARDAPIO"))
	if err != nil {
		log.Fatalf("Erro ao carregar o cardápio: %v", err)
	}

	// Initialize store
	store, err := sqlite.New(dbPath)
	if err != nil {
		log.Fatalf("Erro ao inicializar o banco de dados: %v", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, access.NewService(employees, store), cardapio)
	handler.AdminSecret = os.Getenv("SENHA_ADMIN_GERAL")
	handler.ResetSecret = os.Getenv("SENHA_ADMIN_ZERAR_RELATORIO")
	if dir := os.Getenv("CANTINA_RELATORIOS"); dir != "" {
		handler.ReportsDir = dir
	}

	// Daily reset at local midnight
	scheduler := api.NewResetScheduler(store)
	scheduler.Start()
	defer scheduler.Stop()

	// Create router and server
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Servidor rodando em http://localhost:%d", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Servidor falhou: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Encerrando o servidor...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Encerramento forçado: %v", err)
	}

	log.Println("Servidor encerrado")
}
