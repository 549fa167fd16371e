package bot

import "log"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

type cancelHandler struct {
	baseHandler
}

func newCancelHandler(engine *spending.Engine) *cancelHandler {
	h := &cancelHandler{}
	h.engine = engine
	return h
}

func (h *cancelHandler) register(out_msg_chan chan<- tgbotapi.MessageConfig,
	service_chan chan<- serviceMsg) handlerTrigger {
	inCh := make(chan tgbotapi.Message, 0)
	h.in_msg_chan = inCh
	h.out_msg_chan = out_msg_chan

	return handlerTrigger{cmd: "cancel",
		in_msg_chan: inCh}
}

func (h *cancelHandler) run() {
	for msg := range h.in_msg_chan {
		log.Printf("Cancel requested by %s", dumpMsgUserInfo(msg))
		owner := spending.OwnerId(msg.Chat.ID)
		reply := h.engine.Cancel(owner)
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, reply.Text)
	}
}
