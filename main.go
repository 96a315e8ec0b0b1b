package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/germanalvarez8/nextdet-agent/agent"
	"github.com/germanalvarez8/nextdet-agent/config"
	dbpkg "github.com/germanalvarez8/nextdet-agent/db"
	"github.com/germanalvarez8/nextdet-agent/router"
	"github.com/germanalvarez8/nextdet-agent/store"
	"github.com/germanalvarez8/nextdet-agent/whatsapp"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// =====================
// ENV esperadas
// =====================
//
// WhatsApp Cloud API (Meta)
// - WHATSAPP_ACCESS_TOKEN         (token permanente/sistema)
// - WHATSAPP_PHONE_NUMBER_ID      (ID do telefone para envio de mensagens)
// - WEBHOOK_VERIFY_TOKEN          (string configurada no painel do WhatsApp)
// - WHATSAPP_APP_SECRET           (App Secret para validar X-Hub-Signature-256) [opcional]
//
// Agente LLM
// - ANTHROPIC_API_KEY
//
// Server
// - API_KEY                       (bearer para rotas de envio; vazio = sem auth)
// - CONFIG_PATH                   (default: config.json)
// - AUTOMIGRATE=1                 (habilita automigrate em dev)
//
// =====================

func main() {
	_ = godotenv.Load()

	configPath := getenv("CONFIG_PATH", "config.json")
	conf := config.Get(configPath)

	// credenciais ausentes são fatais: sem elas não há operação parcial
	accessToken := mustEnv("WHATSAPP_ACCESS_TOKEN")
	phoneNumberID := mustEnv("WHATSAPP_PHONE_NUMBER_ID")
	verifyToken := mustEnv("WEBHOOK_VERIFY_TOKEN")
	anthropicKey := mustEnv("ANTHROPIC_API_KEY")

	db, err := dbpkg.Connect(conf)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	messages := store.NewGormMessages(db)

	client := &whatsapp.Client{
		AccessToken:   accessToken,
		PhoneNumberID: phoneNumberID,
		ApiVersion:    conf.WhatsApp.ApiVersion,
		HTTPClient: whatsapp.NewHTTPClient(
			time.Duration(conf.WhatsApp.TimeoutSeconds)*time.Second,
			time.Duration(conf.WhatsApp.ConnectTimeoutSeconds)*time.Second,
		),
	}
	dispatcher := whatsapp.NewDispatcher(client, messages)
	webhook := whatsapp.NewWebhookHandler(verifyToken, messages)

	ag := agent.NewClient(anthropicKey)
	if conf.Agent.Model != "" {
		ag.Model = conf.Agent.Model
	}

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	router.Initialize(r, dispatcher, webhook, ag)

	srv := &http.Server{
		Addr:              ":" + conf.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("nextdet-agent listening on :%s", conf.ApiPort)
	log.Fatal(srv.ListenAndServe())
}

func mustEnv(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		log.Fatalf("%s not set", key)
	}
	return v
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
