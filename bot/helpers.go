package bot

import "fmt"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

func dumpMsgUserInfo(msg tgbotapi.Message) string {
	return fmt.Sprintf("chat ID: %d (type '%s'), message issued by user ID: %d (username: '%s')", msg.Chat.ID,
		msg.Chat.Type,
		msg.From.ID,
		msg.From.UserName)
}

// renderReplies turns abstract core replies into concrete Telegram messages;
// option replies become inline keyboards.
func renderReplies(chatId int64, replies []spending.Reply) []tgbotapi.MessageConfig {
	result := make([]tgbotapi.MessageConfig, 0, len(replies))
	for _, r := range replies {
		msg := tgbotapi.NewMessage(chatId, r.Text)
		if r.Kind == spending.ReplyOptions {
			msg.ReplyMarkup = optionsKeyboard(r)
		}
		result = append(result, msg)
	}
	return result
}

// optionsKeyboard lays out one keyboard page: one pageable option per row,
// then the always-visible extras packed into a single bottom row.
func optionsKeyboard(r spending.Reply) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, spending.CategoriesPerPage+1)
	for _, o := range pageOptions(r.Options, r.Page) {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Data)))
	}
	if len(r.Extras) > 0 {
		extras := make([]tgbotapi.InlineKeyboardButton, 0, len(r.Extras))
		for _, o := range r.Extras {
			extras = append(extras, tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Data))
		}
		rows = append(rows, extras)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func pageOptions(options []spending.Option, page int) []spending.Option {
	start := page * spending.CategoriesPerPage
	if start >= len(options) {
		return nil
	}
	end := start + spending.CategoriesPerPage
	if end > len(options) {
		end = len(options)
	}
	return options[start:end]
}
