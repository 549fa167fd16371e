package spending

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"
)

// CategoriesPerPage is how many category buttons fit on one keyboard page.
const CategoriesPerPage = 6

type ReplyKind int

const (
	// ReplyMessage is a plain confirmation/error/progress message.
	ReplyMessage ReplyKind = iota
	// ReplyOptions asks the chat interface to present buttons; Options are
	// pageable, Extras are always shown.
	ReplyOptions
	// ReplyTextPrompt asks the user to type free text (a new category name).
	ReplyTextPrompt
)

// Option is one abstract button: a label to render and an opaque payload
// the chat interface must echo back through HandleChoice.
type Option struct {
	Label string
	Data  string
}

// Reply is an abstract instruction to the chat interface. The core never
// renders UI itself.
type Reply struct {
	Kind    ReplyKind
	Text    string
	Options []Option
	Extras  []Option
	Page    int
}

func message(text string) Reply {
	return Reply{Kind: ReplyMessage, Text: text}
}

// Engine is the transaction classification core: it tokenizes free text,
// resolves categories against the per-user dictionary, drives the
// disambiguation dialog and commits resolved transactions to the ledger.
type Engine struct {
	storage  Storage
	sessions SessionStorage
	ledger   *Ledger
	defaults UserSettings
}

func NewEngine(storage Storage, sessions SessionStorage, defaults UserSettings) *Engine {
	return &Engine{
		storage:  storage,
		sessions: sessions,
		ledger:   NewLedger(storage),
		defaults: defaults}
}

// Settings returns the user's stored preferences, falling back to the
// configured defaults for users who never ran /start.
func (e *Engine) Settings(owner OwnerId) UserSettings {
	settings, err := e.storage.ReadSettings(owner)
	if err != nil {
		log.Printf("Cannot read settings for owner %d, using defaults; error: %s", owner, err)
		return e.defaults
	}
	if settings == nil {
		return e.defaults
	}
	return *settings
}

// Texts returns the localized string table for the owner's language.
func (e *Engine) Texts(owner OwnerId) Strings {
	return Localize(e.Settings(owner).Language)
}

// RegisterUser stores default settings for a new user and seeds the
// dictionary template.
func (e *Engine) RegisterUser(owner OwnerId) error {
	settings, err := e.storage.ReadSettings(owner)
	if err != nil {
		return err
	}
	if settings == nil {
		if err := e.storage.WriteSettings(owner, e.defaults); err != nil {
			return err
		}
	}
	// reading the dictionary creates it from the template on first use
	_, err = e.storage.ReadDictionary(owner, e.Settings(owner).Language)
	return err
}

// HandleText processes one incoming free-text message: either a new
// transaction (possibly a comma/newline separated batch) or, when the
// dialog asked for it, the name of a brand-new category.
func (e *Engine) HandleText(owner OwnerId, text string, now time.Time) []Reply {
	settings := e.Settings(owner)
	texts := Localize(settings.Language)

	sess, err := e.sessions.Get(owner)
	if err != nil {
		log.Printf("Cannot load session for owner %d; error: %s", owner, err)
		return []Reply{message(texts.StorageTrouble)}
	}
	if sess == nil {
		sess = &SessionState{State: StateIdle}
	}

	if sess.State == StateTypingNewCategory {
		name := strings.ToLower(strings.TrimSpace(text))
		return e.finishWithNewCategory(owner, sess, settings, texts, name, now)
	}

	// any fresh transaction text supersedes whatever dialog was left
	// hanging; pending state is simply overwritten
	sess = &SessionState{State: StateIdle}

	if batch := NewBatch(text); batch != nil {
		log.Printf("Owner %d sent a batch of %d units", owner, len(batch.Units))
		sess.Batch = batch
		replies := []Reply{message(fmt.Sprintf(texts.MultiStart, len(batch.Units)))}
		return append(replies, e.driveBatch(owner, sess, settings, texts, now)...)
	}

	replies, settled := e.processUnit(owner, sess, settings, texts, strings.TrimSpace(text), now)
	if settled {
		if err := e.sessions.Delete(owner); err != nil {
			log.Printf("Cannot drop session for owner %d; error: %s", owner, err)
		}
	}
	return replies
}

// driveBatch feeds batch units through the pipeline until one needs user
// interaction or the batch completes. Empty units are skipped silently,
// malformed ones with a per-unit error; the index never rewinds.
func (e *Engine) driveBatch(owner OwnerId, sess *SessionState, settings UserSettings, texts Strings, now time.Time) []Reply {
	replies := make([]Reply, 0, 2)
	for {
		unit, position, ok := sess.Batch.Next()
		if !ok {
			if err := e.sessions.Delete(owner); err != nil {
				log.Printf("Cannot drop session for owner %d; error: %s", owner, err)
			}
			return append(replies, message(texts.AllProcessed))
		}
		if unit == "" {
			log.Printf("Skipping empty batch unit %d for owner %d", position, owner)
			continue
		}
		unitReplies, settled := e.processUnit(owner, sess, settings, texts, unit, now)
		replies = append(replies, unitReplies...)
		if !settled {
			return replies
		}
	}
}

// processUnit runs one transaction string through tokenize-resolve-commit.
// settled means the unit is finished (committed or discarded) and the batch
// may advance; otherwise the dialog waits for the user and the session has
// been saved.
func (e *Engine) processUnit(owner OwnerId, sess *SessionState, settings UserSettings, texts Strings, unit string, now time.Time) ([]Reply, bool) {
	parsed, err := ParseTransaction(unit, now)
	if err != nil {
		log.Printf("Owner %d sent unparseable unit %q: %s", owner, unit, err)
		return []Reply{message(texts.TransactionError)}, true
	}

	dict, err := e.readDictionary(owner, settings)
	if err != nil {
		log.Printf("Cannot read dictionary for owner %d; error: %s", owner, err)
		return []Reply{message(texts.StorageTrouble)}, true
	}

	pending := &PendingTransaction{
		Token:       uuid.NewV4().String(),
		Owner:       owner,
		Amount:      parsed.Amount,
		Currency:    settings.Currency,
		Subcategory: parsed.Subcategory,
		Time:        parsed.Time,
	}

	if parsed.ExplicitCategory {
		// explicit form always teaches the dictionary, then commits at once
		if err := e.learnPair(owner, settings, dict, parsed.Category, parsed.Subcategory); err != nil {
			log.Printf("Cannot learn pair %s/%s for owner %d; error: %s", parsed.Category, parsed.Subcategory, owner, err)
			return []Reply{message(texts.StorageTrouble)}, true
		}
		return e.commitPending(owner, sess, texts, pending, parsed.Category), true
	}

	resolution := Resolve(dict, parsed.Subcategory)
	switch resolution.Kind {
	case ResolutionUnique:
		if !parsed.ShortForm() || sess.Batch != nil {
			// dated inputs and batch units with a uniquely known subcategory
			// save directly; only a standalone short form asks for
			// confirmation
			return e.commitPending(owner, sess, texts, pending, resolution.Category), true
		}
		pending.Category = resolution.Category
		sess.State = StateConfirmingFound
		sess.Pending = pending
		sess.Candidates = nil
		sess.ShowingAll = false
		sess.Page = 0
		if !e.saveSession(owner, sess) {
			return []Reply{message(texts.StorageTrouble)}, true
		}
		tok := shortToken(pending.Token)
		return []Reply{{
			Kind: ReplyOptions,
			Text: fmt.Sprintf(texts.SubcatFoundOne, pending.Subcategory, resolution.Category),
			Options: []Option{
				{Label: fmt.Sprintf(texts.UseFoundButton, resolution.Category), Data: fmt.Sprintf("use:%s:%s", tok, resolution.Category)},
			},
			Extras: []Option{
				{Label: texts.ChooseOtherButton, Data: fmt.Sprintf("all:%s", tok)},
				{Label: texts.CancelButton, Data: "cancel"},
			},
		}}, false

	case ResolutionAmbiguous:
		sess.State = StateChoosingCategory
		sess.Pending = pending
		sess.Candidates = resolution.Candidates
		sess.ShowingAll = false
		sess.Page = 0
		if !e.saveSession(owner, sess) {
			return []Reply{message(texts.StorageTrouble)}, true
		}
		text := fmt.Sprintf(texts.SubcatFoundMultiple, pending.Subcategory, strings.Join(resolution.Candidates, ", "))
		return []Reply{e.choiceReply(sess, dict, texts, text)}, false

	default: // ResolutionUnknown
		sess.State = StateChoosingCategory
		sess.Pending = pending
		sess.Candidates = nil
		sess.ShowingAll = true
		sess.Page = 0
		if !e.saveSession(owner, sess) {
			return []Reply{message(texts.StorageTrouble)}, true
		}
		text := fmt.Sprintf(texts.SubcatNotFound, pending.Subcategory)
		return []Reply{e.choiceReply(sess, dict, texts, text)}, false
	}
}

// HandleChoice processes an echoed button payload from the chat interface.
func (e *Engine) HandleChoice(owner OwnerId, data string, now time.Time) []Reply {
	settings := e.Settings(owner)
	texts := Localize(settings.Language)

	if data == "cancel" {
		return []Reply{e.Cancel(owner)}
	}

	sess, err := e.sessions.Get(owner)
	if err != nil {
		log.Printf("Cannot load session for owner %d; error: %s", owner, err)
		return []Reply{message(texts.StorageTrouble)}
	}
	if sess == nil || sess.Pending == nil {
		log.Printf("Choice %q from owner %d without a pending transaction: %s", data, owner, ErrMissingTransactionContext)
		return []Reply{message(texts.TryAgain)}
	}

	verb, tok, arg := splitChoice(data)
	if tok != shortToken(sess.Pending.Token) {
		log.Printf("Stale choice %q from owner %d (current token %s): %s", data, owner, shortToken(sess.Pending.Token), ErrMissingTransactionContext)
		return []Reply{message(texts.TryAgain)}
	}

	dict, err := e.readDictionary(owner, settings)
	if err != nil {
		log.Printf("Cannot read dictionary for owner %d; error: %s", owner, err)
		return []Reply{message(texts.StorageTrouble)}
	}

	switch verb {
	case "use":
		// the found category is confirmed; the pair is already in the
		// dictionary, no mutation needed
		category := sess.Pending.Category
		if category == "" {
			category = arg
		}
		return e.finalize(owner, sess, settings, texts, category, false, now)

	case "cat":
		if arg == "" {
			return []Reply{message(texts.TryAgain)}
		}
		return e.finalize(owner, sess, settings, texts, arg, true, now)

	case "new":
		sess.State = StateTypingNewCategory
		if !e.saveSession(owner, sess) {
			return []Reply{message(texts.StorageTrouble)}
		}
		return []Reply{{Kind: ReplyTextPrompt, Text: fmt.Sprintf(texts.CreateCategoryText, sess.Pending.Subcategory)}}

	case "all":
		// the escape hatch: show every category, the declined one included
		sess.State = StateChoosingCategory
		sess.ShowingAll = true
		sess.Page = 0
		if !e.saveSession(owner, sess) {
			return []Reply{message(texts.StorageTrouble)}
		}
		text := fmt.Sprintf(texts.ChooseFromAll, sess.Pending.Subcategory)
		return []Reply{e.choiceReply(sess, dict, texts, text)}

	case "page":
		page, err := strconv.Atoi(arg)
		if err != nil || page < 0 {
			return []Reply{message(texts.TryAgain)}
		}
		sess.Page = page
		if !e.saveSession(owner, sess) {
			return []Reply{message(texts.StorageTrouble)}
		}
		text := fmt.Sprintf(texts.ChooseFromAll, sess.Pending.Subcategory)
		if !sess.ShowingAll {
			text = fmt.Sprintf(texts.SubcatFoundMultiple, sess.Pending.Subcategory, strings.Join(sess.Candidates, ", "))
		}
		return []Reply{e.choiceReply(sess, dict, texts, text)}

	default:
		log.Printf("Unexpected choice payload %q from owner %d", data, owner)
		return []Reply{message(texts.TryAgain)}
	}
}

// Cancel discards the pending transaction and any batch; transactions
// already committed stay committed.
func (e *Engine) Cancel(owner OwnerId) Reply {
	texts := e.Texts(owner)
	if err := e.sessions.Delete(owner); err != nil {
		log.Printf("Cannot drop session for owner %d; error: %s", owner, err)
		return message(texts.StorageTrouble)
	}
	log.Printf("Owner %d cancelled the current transaction dialog", owner)
	return message(texts.Cancelled)
}

func (e *Engine) finishWithNewCategory(owner OwnerId, sess *SessionState, settings UserSettings, texts Strings, name string, now time.Time) []Reply {
	if sess.Pending == nil {
		log.Printf("New category name from owner %d without a pending transaction: %s", owner, ErrMissingTransactionContext)
		return []Reply{message(texts.TryAgain)}
	}
	if name == "" {
		return []Reply{{Kind: ReplyTextPrompt, Text: fmt.Sprintf(texts.CreateCategoryText, sess.Pending.Subcategory)}}
	}
	return e.finalize(owner, sess, settings, texts, name, true, now)
}

// finalize commits the pending transaction under the chosen category,
// teaching the dictionary first when asked to, and then lets the batch (if
// any) continue.
func (e *Engine) finalize(owner OwnerId, sess *SessionState, settings UserSettings, texts Strings, category string, writePair bool, now time.Time) []Reply {
	pending := sess.Pending
	if writePair {
		dict, err := e.readDictionary(owner, settings)
		if err != nil {
			log.Printf("Cannot read dictionary for owner %d; error: %s", owner, err)
			return []Reply{message(texts.StorageTrouble)}
		}
		if err := e.learnPair(owner, settings, dict, category, pending.Subcategory); err != nil {
			log.Printf("Cannot learn pair %s/%s for owner %d; error: %s", category, pending.Subcategory, owner, err)
			return []Reply{message(texts.StorageTrouble)}
		}
	}

	replies := []Reply{message(fmt.Sprintf(texts.ConfirmSaveCat, category, pending.Subcategory))}

	sess.Pending = nil
	sess.State = StateIdle
	sess.Candidates = nil
	sess.ShowingAll = false
	sess.Page = 0

	committed := e.commitPending(owner, sess, texts, pending, category)
	replies = append(replies, committed...)

	if sess.Batch != nil {
		return append(replies, e.driveBatch(owner, sess, settings, texts, now)...)
	}
	if err := e.sessions.Delete(owner); err != nil {
		log.Printf("Cannot drop session for owner %d; error: %s", owner, err)
	}
	return replies
}

// commitPending writes the record and produces the saved/progress message.
func (e *Engine) commitPending(owner OwnerId, sess *SessionState, texts Strings, pending *PendingTransaction, category string) []Reply {
	_, err := e.ledger.Commit(owner, pending.Amount, pending.Currency, category, pending.Subcategory, pending.Time)
	if err != nil {
		log.Printf("Cannot commit transaction for owner %d; error: %s", owner, err)
		return []Reply{message(texts.StorageTrouble)}
	}
	if sess.Batch != nil {
		return []Reply{message(fmt.Sprintf(texts.Progress, sess.Batch.Index, len(sess.Batch.Units), pending.Subcategory, pending.Amount))}
	}
	return []Reply{message(texts.TransactionSaved)}
}

// learnPair writes the (category, subcategory) pair into the dictionary
// (idempotent) and retro-labels earlier "other" records of that
// subcategory.
func (e *Engine) learnPair(owner OwnerId, settings UserSettings, dict *Dictionary, category, subcategory string) error {
	if dict.AddPair(category, subcategory) {
		if err := e.storage.WriteDictionary(owner, settings.Language, dict.Map()); err != nil {
			return err
		}
	}
	if err := e.ledger.RelabelOther(owner, subcategory, category); err != nil {
		// the dictionary write already succeeded; relabeling is best effort
		log.Printf("Cannot relabel old 'other' records of %s for owner %d; error: %s", subcategory, owner, err)
	}
	return nil
}

// UpdateSettings persists new user preferences.
func (e *Engine) UpdateSettings(owner OwnerId, settings UserSettings) error {
	return e.storage.WriteSettings(owner, settings)
}

// ListCategories returns the owner's dictionary for display.
func (e *Engine) ListCategories(owner OwnerId) (*Dictionary, error) {
	return e.readDictionary(owner, e.Settings(owner))
}

// RemovePair drops one (category, subcategory) pair from the dictionary.
// Reports whether the pair was present.
func (e *Engine) RemovePair(owner OwnerId, category, subcategory string) (bool, error) {
	settings := e.Settings(owner)
	dict, err := e.readDictionary(owner, settings)
	if err != nil {
		return false, err
	}
	if !dict.RemovePair(category, subcategory) {
		return false, nil
	}
	return true, e.storage.WriteDictionary(owner, settings.Language, dict.Map())
}

// LastTransactions returns up to n most recent records, newest first.
func (e *Engine) LastTransactions(owner OwnerId, n int) ([]Transaction, error) {
	records, err := e.storage.ReadRecords(owner)
	if err != nil {
		return nil, err
	}
	if n <= 0 || n > len(records) {
		n = len(records)
	}
	last := make([]Transaction, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		last = append(last, records[i])
	}
	return last, nil
}

func (e *Engine) readDictionary(owner OwnerId, settings UserSettings) (*Dictionary, error) {
	m, err := e.storage.ReadDictionary(owner, settings.Language)
	if err != nil {
		return nil, err
	}
	return NewDictionary(m), nil
}

func (e *Engine) saveSession(owner OwnerId, sess *SessionState) bool {
	if err := e.sessions.Put(owner, sess); err != nil {
		log.Printf("Cannot save session for owner %d; error: %s", owner, err)
		return false
	}
	return true
}

// choiceReply builds the category keyboard for the current dialog state:
// either every category (paged, with create-new) or just the ambiguous
// candidates (with a show-all escape hatch).
func (e *Engine) choiceReply(sess *SessionState, dict *Dictionary, texts Strings, text string) Reply {
	tok := shortToken(sess.Pending.Token)

	var names []string
	if sess.ShowingAll {
		names = dict.Categories()
	} else {
		names = sess.Candidates
	}

	options := make([]Option, 0, len(names))
	for _, name := range names {
		options = append(options, Option{Label: name, Data: fmt.Sprintf("cat:%s:%s", tok, name)})
	}

	extras := make([]Option, 0, 4)
	if sess.ShowingAll {
		if sess.Page > 0 {
			extras = append(extras, Option{Label: texts.PrevPageButton, Data: fmt.Sprintf("page:%s:%d", tok, sess.Page-1)})
		}
		if (sess.Page+1)*CategoriesPerPage < len(options) {
			extras = append(extras, Option{Label: texts.NextPageButton, Data: fmt.Sprintf("page:%s:%d", tok, sess.Page+1)})
		}
		extras = append(extras, Option{Label: texts.CreateNewButton, Data: fmt.Sprintf("new:%s", tok)})
	} else {
		extras = append(extras, Option{Label: texts.ShowAllButton, Data: fmt.Sprintf("all:%s", tok)})
	}
	extras = append(extras, Option{Label: texts.CancelButton, Data: "cancel"})

	return Reply{
		Kind:    ReplyOptions,
		Text:    text,
		Options: options,
		Extras:  extras,
		Page:    sess.Page,
	}
}

func shortToken(token string) string {
	if len(token) < 8 {
		return token
	}
	return token[:8]
}

// splitChoice parses "verb:token" or "verb:token:arg" payloads.
func splitChoice(data string) (verb, token, arg string) {
	parts := strings.SplitN(data, ":", 3)
	verb = parts[0]
	if len(parts) > 1 {
		token = parts[1]
	}
	if len(parts) > 2 {
		arg = parts[2]
	}
	return verb, token, arg
}
