package spending

import "fmt"
import "strings"
import "testing"
import "time"

func testEngine() (*Engine, Storage) {
	storage := NewRamStorage()
	engine := NewEngine(storage, NewRamSessionStorage(), UserSettings{Language: "en", Currency: "USD"})
	return engine, storage
}

// findData returns the payload of the first option whose payload starts with
// prefix, "" if none matches.
func findData(options []Option, prefix string) string {
	for _, o := range options {
		if strings.HasPrefix(o.Data, prefix) {
			return o.Data
		}
	}
	return ""
}

func findCategoryData(options []Option, category string) string {
	for _, o := range options {
		if o.Label == category {
			return o.Data
		}
	}
	return ""
}

func TestUniqueShortFormNeedsConfirmation(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "taxi 4", testNow)
	if len(replies) != 1 || replies[0].Kind != ReplyOptions {
		t.Fatalf("replies: %+v", replies)
	}
	use := findData(replies[0].Options, "use:")
	if use == "" {
		t.Fatalf("no use button: %+v", replies[0])
	}

	// nothing is committed until the user confirms
	if records, _ := storage.ReadRecords(1); len(records) != 0 {
		t.Fatalf("records committed early: %v", records)
	}

	replies = engine.HandleChoice(1, use, testNow)
	texts := Localize("en")
	if len(replies) != 2 || replies[1].Text != texts.TransactionSaved {
		t.Fatalf("replies: %+v", replies)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 1 {
		t.Fatalf("records: %v", records)
	}
	r := records[0]
	if r.ID != 1 || r.Category != "transport" || r.Subcategory != "taxi" || r.Amount != 4 || r.Currency != "USD" {
		t.Errorf("record: %+v", r)
	}
}

func TestUnknownSubcategorySelectExisting(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "unknown_widget_xyz 9", testNow)
	if len(replies) != 1 || replies[0].Kind != ReplyOptions {
		t.Fatalf("replies: %+v", replies)
	}
	choice := findCategoryData(replies[0].Options, "transport")
	if !strings.HasPrefix(choice, "cat:") {
		t.Fatalf("no transport button: %+v", replies[0].Options)
	}

	replies = engine.HandleChoice(1, choice, testNow)
	if len(replies) != 2 {
		t.Fatalf("replies: %+v", replies)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 1 || records[0].Category != "transport" || records[0].Subcategory != "unknown_widget_xyz" {
		t.Fatalf("records: %v", records)
	}

	// the pair was learned: same input now resolves uniquely
	replies = engine.HandleText(1, "unknown_widget_xyz 2", testNow)
	if len(replies) != 1 || findData(replies[0].Options, "use:") == "" {
		t.Errorf("pair not learned: %+v", replies)
	}
}

func TestCreateNewCategoryFlow(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "thing 9", testNow)
	newData := findData(replies[0].Extras, "new:")
	if newData == "" {
		t.Fatalf("no create-new button: %+v", replies[0])
	}

	replies = engine.HandleChoice(1, newData, testNow)
	if len(replies) != 1 || replies[0].Kind != ReplyTextPrompt {
		t.Fatalf("replies: %+v", replies)
	}

	replies = engine.HandleText(1, "Gadgets", testNow)
	texts := Localize("en")
	if len(replies) != 2 || replies[1].Text != texts.TransactionSaved {
		t.Fatalf("replies: %+v", replies)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 1 || records[0].Category != "gadgets" {
		t.Fatalf("records: %v", records)
	}
	dict, err := engine.ListCategories(1)
	if err != nil {
		t.Fatalf("categories: %s", err)
	}
	if cats := dict.ReverseLookup("thing"); len(cats) != 1 || cats[0] != "gadgets" {
		t.Errorf("dictionary: %v", cats)
	}
}

func TestAmbiguousSubcategory(t *testing.T) {
	engine, storage := testEngine()

	// teach a second category containing "taxi"
	engine.HandleText(1, "business taxi 10", testNow)

	replies := engine.HandleText(1, "taxi 4", testNow)
	if len(replies) != 1 || replies[0].Kind != ReplyOptions {
		t.Fatalf("replies: %+v", replies)
	}
	if len(replies[0].Options) != 2 {
		t.Fatalf("candidates: %+v", replies[0].Options)
	}
	if findData(replies[0].Extras, "all:") == "" {
		t.Errorf("no show-all escape hatch: %+v", replies[0].Extras)
	}

	choice := findCategoryData(replies[0].Options, "business")
	engine.HandleChoice(1, choice, testNow)

	records, _ := storage.ReadRecords(1)
	if len(records) != 2 || records[1].Category != "business" {
		t.Fatalf("records: %v", records)
	}
}

func TestExplicitDatedFormSavesDirectly(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "05.03 transport taxi 12", testNow)
	texts := Localize("en")
	if len(replies) != 1 || replies[0].Text != texts.TransactionSaved {
		t.Fatalf("replies: %+v", replies)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 1 {
		t.Fatalf("records: %v", records)
	}
	expected := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if !records[0].Time.Equal(expected) {
		t.Errorf("time: %s; expected: %s", records[0].Time, expected)
	}
}

func TestMalformedAmountNothingCommitted(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "taxi abc", testNow)
	texts := Localize("en")
	if len(replies) != 1 || replies[0].Text != texts.TransactionError {
		t.Fatalf("replies: %+v", replies)
	}
	if records, _ := storage.ReadRecords(1); len(records) != 0 {
		t.Errorf("records: %v", records)
	}
}

func TestBatchOfExplicitForms(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "food coffee 5, transport metro 3", testNow)
	texts := Localize("en")
	if len(replies) != 4 {
		t.Fatalf("replies: %+v", replies)
	}
	if replies[0].Text != fmt.Sprintf(texts.MultiStart, 2) {
		t.Errorf("start: %s", replies[0].Text)
	}
	if replies[1].Text != fmt.Sprintf(texts.Progress, 1, 2, "coffee", 5.0) {
		t.Errorf("progress 1: %s", replies[1].Text)
	}
	if replies[2].Text != fmt.Sprintf(texts.Progress, 2, 2, "metro", 3.0) {
		t.Errorf("progress 2: %s", replies[2].Text)
	}
	if replies[3].Text != texts.AllProcessed {
		t.Errorf("final: %s", replies[3].Text)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 2 || records[0].ID != 1 || records[1].ID != 2 {
		t.Fatalf("records: %v", records)
	}
}

func TestBatchPausesForDisambiguationOnly(t *testing.T) {
	engine, storage := testEngine()

	// uniquely known units commit straight away inside a batch; only the
	// unknown middle unit pauses the coordinator
	replies := engine.HandleText(1, "taxi 4, unknown_widget_xyz 9, coffee 5", testNow)
	texts := Localize("en")
	if len(replies) != 3 || replies[2].Kind != ReplyOptions {
		t.Fatalf("replies: %+v", replies)
	}
	if replies[1].Text != fmt.Sprintf(texts.Progress, 1, 3, "taxi", 4.0) {
		t.Errorf("progress: %s", replies[1].Text)
	}

	if records, _ := storage.ReadRecords(1); len(records) != 1 {
		t.Fatalf("records before choice: %v", records)
	}

	// resolve unit 2; unit 3 is uniquely known and drains the batch
	choice := findCategoryData(replies[2].Options, "fun")
	replies = engine.HandleChoice(1, choice, testNow)
	if len(replies) != 4 || replies[3].Text != texts.AllProcessed {
		t.Fatalf("replies after choice: %+v", replies)
	}
	if replies[2].Text != fmt.Sprintf(texts.Progress, 3, 3, "coffee", 5.0) {
		t.Errorf("final progress: %s", replies[2].Text)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 3 {
		t.Fatalf("records: %v", records)
	}
	if records[0].ID != 1 || records[1].ID != 2 || records[2].ID != 3 {
		t.Errorf("ids: %d %d %d", records[0].ID, records[1].ID, records[2].ID)
	}
	if records[0].Category != "transport" || records[1].Category != "fun" || records[2].Category != "food" {
		t.Errorf("categories: %s %s %s", records[0].Category, records[1].Category, records[2].Category)
	}
}

func TestBatchSkipsEmptyAndMalformedUnits(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "food coffee 5,,taxi abc,transport metro 3", testNow)
	texts := Localize("en")
	last := replies[len(replies)-1]
	if last.Text != texts.AllProcessed {
		t.Fatalf("replies: %+v", replies)
	}
	sawError := false
	for _, r := range replies {
		if r.Text == texts.TransactionError {
			sawError = true
		}
	}
	if !sawError {
		t.Errorf("malformed unit not reported: %+v", replies)
	}

	records, _ := storage.ReadRecords(1)
	if len(records) != 2 {
		t.Errorf("records: %v", records)
	}
}

func TestStaleChoiceRejected(t *testing.T) {
	engine, storage := testEngine()

	engine.HandleText(1, "taxi 4", testNow)
	replies := engine.HandleChoice(1, "use:deadbeef:transport", testNow)
	texts := Localize("en")
	if len(replies) != 1 || replies[0].Text != texts.TryAgain {
		t.Fatalf("replies: %+v", replies)
	}
	if records, _ := storage.ReadRecords(1); len(records) != 0 {
		t.Errorf("records: %v", records)
	}
}

func TestChoiceWithoutPending(t *testing.T) {
	engine, _ := testEngine()

	replies := engine.HandleChoice(1, "cat:00000000:transport", testNow)
	texts := Localize("en")
	if len(replies) != 1 || replies[0].Text != texts.TryAgain {
		t.Fatalf("replies: %+v", replies)
	}
}

func TestCancelDropsDialog(t *testing.T) {
	engine, storage := testEngine()

	replies := engine.HandleText(1, "taxi 4", testNow)
	use := findData(replies[0].Options, "use:")

	replies = engine.HandleChoice(1, "cancel", testNow)
	texts := Localize("en")
	if len(replies) != 1 || replies[0].Text != texts.Cancelled {
		t.Fatalf("replies: %+v", replies)
	}

	// the old button is now stale
	replies = engine.HandleChoice(1, use, testNow)
	if len(replies) != 1 || replies[0].Text != texts.TryAgain {
		t.Fatalf("replies: %+v", replies)
	}
	if records, _ := storage.ReadRecords(1); len(records) != 0 {
		t.Errorf("records: %v", records)
	}
}

func TestNewTextSupersedesPendingDialog(t *testing.T) {
	engine, storage := testEngine()

	engine.HandleText(1, "taxi 4", testNow)
	// the user ignores the buttons and sends a fresh explicit transaction
	replies := engine.HandleText(1, "food coffee 5", testNow)
	texts := Localize("en")
	if len(replies) != 1 || replies[0].Text != texts.TransactionSaved {
		t.Fatalf("replies: %+v", replies)
	}
	records, _ := storage.ReadRecords(1)
	if len(records) != 1 || records[0].Subcategory != "coffee" {
		t.Errorf("records: %v", records)
	}
}

func TestCategoryPageNavigation(t *testing.T) {
	engine, _ := testEngine()

	// grow the dictionary past one keyboard page
	engine.HandleText(1, "stuff a 1", testNow)
	engine.HandleText(1, "misc b 1", testNow)

	replies := engine.HandleText(1, "zzz 1", testNow)
	if len(replies) != 1 || len(replies[0].Options) != 7 {
		t.Fatalf("replies: %+v", replies)
	}
	next := findData(replies[0].Extras, "page:")
	if next == "" {
		t.Fatalf("no next-page button: %+v", replies[0].Extras)
	}

	replies = engine.HandleChoice(1, next, testNow)
	if len(replies) != 1 || replies[0].Page != 1 {
		t.Fatalf("replies: %+v", replies)
	}
	prev := findData(replies[0].Extras, "page:")
	if !strings.HasSuffix(prev, ":0") {
		t.Errorf("no prev-page button: %+v", replies[0].Extras)
	}
}

func TestRemovePairViaEngine(t *testing.T) {
	engine, _ := testEngine()

	removed, err := engine.RemovePair(1, "transport", "taxi")
	if err != nil || !removed {
		t.Fatalf("remove: %v %s", removed, err)
	}
	removed, err = engine.RemovePair(1, "transport", "taxi")
	if err != nil || removed {
		t.Fatalf("second remove: %v %s", removed, err)
	}
}

func TestLastTransactionsNewestFirst(t *testing.T) {
	engine, _ := testEngine()

	engine.HandleText(1, "food coffee 5", testNow)
	engine.HandleText(1, "transport metro 3", testNow)
	engine.HandleText(1, "home rent 500", testNow)

	last, err := engine.LastTransactions(1, 2)
	if err != nil {
		t.Fatalf("last: %s", err)
	}
	if len(last) != 2 || last[0].Subcategory != "rent" || last[1].Subcategory != "metro" {
		t.Errorf("last: %v", last)
	}
}
