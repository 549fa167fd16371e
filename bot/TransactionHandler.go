package bot

import "log"
import "time"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

// transactionHandler is the catch-all for free-form text: every non-command
// message is treated as one or more transactions. It also receives the
// button presses of the disambiguation dialogs it started.
type transactionHandler struct {
	baseHandler
	in_cb_chan <-chan tgbotapi.CallbackQuery
}

func newTransactionHandler(engine *spending.Engine) *transactionHandler {
	h := &transactionHandler{}
	h.engine = engine
	return h
}

func (h *transactionHandler) register(out_msg_chan chan<- tgbotapi.MessageConfig,
	service_chan chan<- serviceMsg) handlerTrigger {
	inCh := make(chan tgbotapi.Message, 0)
	h.in_msg_chan = inCh
	h.out_msg_chan = out_msg_chan

	return handlerTrigger{catchAll: true,
		in_msg_chan: inCh}
}

// registerCallbacks returns the channel the main cycle feeds callback
// queries into.
func (h *transactionHandler) registerCallbacks() chan<- tgbotapi.CallbackQuery {
	cbCh := make(chan tgbotapi.CallbackQuery, 0)
	h.in_cb_chan = cbCh
	return cbCh
}

func (h *transactionHandler) run() {
	for {
		select {
		case msg, ok := <-h.in_msg_chan:
			if !ok {
				return
			}
			log.Printf("Transaction text received from %s; text: %s", dumpMsgUserInfo(msg), msg.Text)
			owner := spending.OwnerId(msg.Chat.ID)
			replies := h.engine.HandleText(owner, msg.Text, time.Now())
			for _, reply := range renderReplies(msg.Chat.ID, replies) {
				h.out_msg_chan <- reply
			}

		case cb, ok := <-h.in_cb_chan:
			if !ok {
				return
			}
			if cb.Message == nil {
				log.Printf("Callback query %s without a message, skipping", cb.ID)
				continue
			}
			log.Printf("Callback received from chat %d; data: %s", cb.Message.Chat.ID, cb.Data)
			owner := spending.OwnerId(cb.Message.Chat.ID)
			replies := h.engine.HandleChoice(owner, cb.Data, time.Now())
			for _, reply := range renderReplies(cb.Message.Chat.ID, replies) {
				h.out_msg_chan <- reply
			}
		}
	}
}
