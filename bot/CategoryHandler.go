package bot

import "fmt"
import "log"
import "regexp"
import "strings"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

var removeRe *regexp.Regexp = regexp.MustCompile(`remove +(\S+) +(\S+)`)

// categoryHandler shows the user's dictionary and removes pairs from it.
type categoryHandler struct {
	baseHandler
}

func newCategoryHandler(engine *spending.Engine) *categoryHandler {
	h := &categoryHandler{}
	h.engine = engine
	return h
}

func (h *categoryHandler) register(out_msg_chan chan<- tgbotapi.MessageConfig,
	service_chan chan<- serviceMsg) handlerTrigger {
	inCh := make(chan tgbotapi.Message, 0)
	h.in_msg_chan = inCh
	h.out_msg_chan = out_msg_chan

	return handlerTrigger{cmd: "categories",
		in_msg_chan: inCh}
}

func (h *categoryHandler) run() {
	for msg := range h.in_msg_chan {
		owner := spending.OwnerId(msg.Chat.ID)
		texts := h.engine.Texts(owner)

		if matches := removeRe.FindStringSubmatch(msg.Text); matches != nil {
			h.removePair(msg, owner, texts, strings.ToLower(matches[1]), strings.ToLower(matches[2]))
			continue
		}
		h.listCategories(msg, owner, texts)
	}
}

func (h *categoryHandler) removePair(msg tgbotapi.Message, owner spending.OwnerId, texts spending.Strings, category, subcategory string) {
	removed, err := h.engine.RemovePair(owner, category, subcategory)
	if err != nil {
		log.Printf("Could not remove pair %s/%s for %s; error: %s", category, subcategory, dumpMsgUserInfo(msg), err)
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.StorageTrouble)
		return
	}
	if !removed {
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.CategoryRemoveHint)
		return
	}
	log.Printf("Pair %s/%s removed for %s", category, subcategory, dumpMsgUserInfo(msg))
	h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, fmt.Sprintf(texts.CategoryRemoved, subcategory, category))
}

func (h *categoryHandler) listCategories(msg tgbotapi.Message, owner spending.OwnerId, texts spending.Strings) {
	dict, err := h.engine.ListCategories(owner)
	if err != nil {
		log.Printf("Could not read categories for %s; error: %s", dumpMsgUserInfo(msg), err)
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.StorageTrouble)
		return
	}

	lines := make([]string, 0, 8)
	lines = append(lines, texts.CategoriesHeader)
	for _, category := range dict.Categories() {
		lines = append(lines, fmt.Sprintf("%s: %s", category, strings.Join(dict.Subcategories(category), ", ")))
	}
	lines = append(lines, "", texts.CategoryRemoveHint)
	h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, strings.Join(lines, "\n"))
}
