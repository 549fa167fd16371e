package bot

import "fmt"
import "log"
import "regexp"
import "strings"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

var languageRe *regexp.Regexp = regexp.MustCompile("language +([a-zA-Z]{2})")
var currencyRe *regexp.Regexp = regexp.MustCompile("currency +([a-zA-Z]{3})")

type settingsHandler struct {
	baseHandler
}

func newSettingsHandler(engine *spending.Engine) *settingsHandler {
	h := &settingsHandler{}
	h.engine = engine
	return h
}

func (h *settingsHandler) register(out_msg_chan chan<- tgbotapi.MessageConfig,
	service_chan chan<- serviceMsg) handlerTrigger {
	inCh := make(chan tgbotapi.Message, 0)
	h.in_msg_chan = inCh
	h.out_msg_chan = out_msg_chan

	return handlerTrigger{cmd: "settings",
		in_msg_chan: inCh}
}

func (h *settingsHandler) run() {
	for msg := range h.in_msg_chan {
		owner := spending.OwnerId(msg.Chat.ID)
		settings := h.engine.Settings(owner)

		changed := false
		if matches := languageRe.FindStringSubmatch(msg.Text); matches != nil {
			settings.Language = strings.ToLower(matches[1])
			changed = true
		}
		if matches := currencyRe.FindStringSubmatch(msg.Text); matches != nil {
			settings.Currency = strings.ToUpper(matches[1])
			changed = true
		}

		texts := spending.Localize(settings.Language)
		if !changed {
			h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.SettingsHint)
			continue
		}

		if err := h.engine.UpdateSettings(owner, settings); err != nil {
			log.Printf("Could not update settings for %s; error: %s", dumpMsgUserInfo(msg), err)
			h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.StorageTrouble)
			continue
		}
		log.Printf("Settings of %s changed to %+v", dumpMsgUserInfo(msg), settings)
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(texts.SettingsSaved, settings.Language, settings.Currency))
	}
}
