package bot

import "log"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

type startHandler struct {
	baseHandler
}

func newStartHandler(engine *spending.Engine) *startHandler {
	h := &startHandler{}
	h.engine = engine
	return h
}

func (h *startHandler) register(out_msg_chan chan<- tgbotapi.MessageConfig,
	service_chan chan<- serviceMsg) handlerTrigger {
	inCh := make(chan tgbotapi.Message, 0)
	h.in_msg_chan = inCh
	h.out_msg_chan = out_msg_chan

	return handlerTrigger{cmd: "start",
		in_msg_chan: inCh}
}

func (h *startHandler) run() {
	for msg := range h.in_msg_chan {
		owner := spending.OwnerId(msg.Chat.ID)
		texts := h.engine.Texts(owner)
		if err := h.engine.RegisterUser(owner); err != nil {
			log.Printf("Could not register user for %s; error: %s", dumpMsgUserInfo(msg), err)
			h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.StorageTrouble)
			continue
		}
		log.Printf("User has been successfully registered, %s", dumpMsgUserInfo(msg))
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.Greeting)
	}
}
