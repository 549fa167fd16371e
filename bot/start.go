package bot

import "log"
import "net/http"
import "gopkg.in/telegram-bot-api.v4"
import "golang.org/x/net/proxy"

import "github.com/admirallarimda/tgbot-spending-tracker/botcfg"
import "github.com/admirallarimda/tgbot-spending-tracker/spending"

// panics internally if something goes wrong
func setupBot(cfg botcfg.Config) (*tgbotapi.BotAPI, *tgbotapi.UpdatesChannel) {
	botToken := cfg.TGBot.Token
	log.Printf("Setting up a bot with token: %s", botToken)

	var bot *tgbotapi.BotAPI = nil
	server := cfg.Proxy_SOCKS5.Server
	user := cfg.Proxy_SOCKS5.User
	pass := cfg.Proxy_SOCKS5.Pass
	if server != "" {
		log.Printf("Proxy is set, connecting to '%s' with credentials '%s':'%s'", server, user, pass)
		auth := proxy.Auth{User: user,
			Password: pass}
		dialer, err := proxy.SOCKS5("tcp", server, &auth, proxy.Direct)
		if err != nil {
			log.Panicf("Could get proxy dialer, error: %s", err)
		}
		httpTransport := &http.Transport{}
		httpTransport.Dial = dialer.Dial
		httpClient := &http.Client{Transport: httpTransport}
		bot, err = tgbotapi.NewBotAPIWithClient(botToken, httpClient)
		if err != nil {
			log.Panicf("Could not connect via proxy, error: %s", err)
		}
	} else {
		log.Printf("No proxy is set, going without any proxy")
		var err error
		bot, err = tgbotapi.NewBotAPI(botToken)
		if err != nil {
			log.Panicf("Could not connect directly, error: %s", err)
		}
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Panic(err)
	}

	return bot, &updates
}

func run(bot *tgbotapi.BotAPI,
	updates *tgbotapi.UpdatesChannel,
	triggers []handlerTrigger,
	cb_chan chan<- tgbotapi.CallbackQuery,
	service_chan <-chan serviceMsg) {
	isRunning := true
	for isRunning {
		select {
		case update := <-*updates:
			log.Printf("Received an update from tgbotapi")
			if update.CallbackQuery != nil {
				// acknowledge the button press right away, the actual reply
				// comes from the handler
				if _, err := bot.AnswerCallbackQuery(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
					log.Printf("Could not answer callback query %s; error: %s", update.CallbackQuery.ID, err)
				}
				cb_chan <- *update.CallbackQuery
				continue
			}
			if update.Message == nil {
				log.Print("Message: empty. Skipping")
				continue
			}
			handled := false
			for i := range triggers {
				if triggers[i].Handle(*update.Message) {
					handled = true
					break
				}
			}
			if !handled {
				log.Printf("No handler has taken the message: %s", dumpMsgUserInfo(*update.Message))
			}
		case srv := <-service_chan:
			if srv.stopBot {
				isRunning = false
			}
		}
	}

	log.Print("Main cycle has been aborted")
}

func Start(cfg botcfg.Config) error {
	log.Print("Starting the bot")

	bot, updates := setupBot(cfg)

	storage := spending.NewFileStorage(cfg.Data.Dir)
	var sessions spending.SessionStorage = spending.NewRamSessionStorage()
	if cfg.Redis.Server != "" {
		log.Printf("Redis is configured at '%s', sessions will survive restarts", cfg.Redis.Server)
		sessions = spending.NewRedisSessionStorage(cfg.Redis.Server, cfg.Redis.Pass, cfg.Redis.DB)
	}
	defaults := spending.UserSettings{Language: cfg.Data.Language,
		Currency: cfg.Data.Currency}
	engine := spending.NewEngine(storage, sessions, defaults)
	rates := spending.NewRateTable(nil, nil)

	out_msg_chan := make(chan tgbotapi.MessageConfig, 0)
	service_chan := make(chan serviceMsg, 0)

	transactions := newTransactionHandler(engine)
	cb_chan := transactions.registerCallbacks()

	// the catch-all transaction handler must stay the last trigger
	handlers := []msgHandler{
		newStartHandler(engine),
		newCancelHandler(engine),
		newCategoryHandler(engine),
		newSettingsHandler(engine),
		newLastTransactionsHandler(engine, rates),
		transactions,
	}
	triggers := make([]handlerTrigger, 0, len(handlers))
	for _, h := range handlers {
		triggers = append(triggers, h.register(out_msg_chan, service_chan))
		go h.run()
	}

	go func() {
		for msg := range out_msg_chan {
			if _, err := bot.Send(msg); err != nil {
				log.Printf("Could not send a message to chat %d; error: %s", msg.ChatID, err)
			}
		}
	}()

	run(bot, updates, triggers, cb_chan, service_chan)

	log.Print("Stopping the bot")
	return nil
}
