package bot

import "fmt"
import "log"
import "regexp"
import "strconv"
import "strings"
import "gopkg.in/telegram-bot-api.v4"

import "github.com/admirallarimda/tgbot-spending-tracker/spending"

var lastNRe *regexp.Regexp = regexp.MustCompile(`(\d+)`)

// lastTransactionsHandler lists the most recent records with a total
// converted into the user's display currency.
type lastTransactionsHandler struct {
	baseHandler
	rates spending.RateProvider
}

func newLastTransactionsHandler(engine *spending.Engine, rates spending.RateProvider) *lastTransactionsHandler {
	h := &lastTransactionsHandler{}
	h.engine = engine
	h.rates = rates
	return h
}

func (h *lastTransactionsHandler) register(out_msg_chan chan<- tgbotapi.MessageConfig,
	service_chan chan<- serviceMsg) handlerTrigger {
	inCh := make(chan tgbotapi.Message, 0)
	h.in_msg_chan = inCh
	h.out_msg_chan = out_msg_chan

	return handlerTrigger{cmd: "last",
		in_msg_chan: inCh}
}

func (h *lastTransactionsHandler) run() {
	for msg := range h.in_msg_chan {
		owner := spending.OwnerId(msg.Chat.ID)
		texts := h.engine.Texts(owner)
		log.Printf("Last transactions request received from %s; text: %s", dumpMsgUserInfo(msg), msg.Text)

		numberOfShownTransactions := 10
		if matches := lastNRe.FindStringSubmatch(msg.Text); matches != nil {
			n, err := strconv.Atoi(matches[1])
			if err == nil && n > 0 {
				numberOfShownTransactions = n
			}
		}

		transactions, err := h.engine.LastTransactions(owner, numberOfShownTransactions)
		if err != nil {
			log.Printf("Could not get last transactions for %s; error: %s", dumpMsgUserInfo(msg), err)
			h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.StorageTrouble)
			continue
		}
		if len(transactions) == 0 {
			h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, texts.NoRecords)
			continue
		}

		displayCurrency := h.engine.Settings(owner).Currency
		lines := make([]string, 0, len(transactions)+2)
		lines = append(lines, fmt.Sprintf(texts.LastHeader, len(transactions)))
		total := 0.0
		totalOk := true
		for _, t := range transactions {
			lines = append(lines, fmt.Sprintf("#%d %s %s/%s %v %s", t.ID, t.Time.Format("2006-01-02"), t.Category, t.Subcategory, t.Amount, t.Currency))
			converted, err := h.rates.Convert(t.Amount, t.Currency, displayCurrency)
			if err != nil {
				log.Printf("Could not convert %v %s to %s; error: %s", t.Amount, t.Currency, displayCurrency, err)
				totalOk = false
				continue
			}
			total += converted
		}
		if totalOk {
			lines = append(lines, fmt.Sprintf(texts.TotalLine, total, displayCurrency))
		}
		h.out_msg_chan <- tgbotapi.NewMessage(msg.Chat.ID, strings.Join(lines, "\n"))
	}
}
