package spending

// Strings is the full set of user-facing texts for one language. Languages
// are a fixed compile-time table; Localize picks one, nothing is loaded
// dynamically.
type Strings struct {
	TransactionSaved    string
	TransactionError    string
	SubcatNotFound      string // subcategory
	SubcatFoundOne      string // subcategory, category
	SubcatFoundMultiple string // subcategory, category list
	ChooseFromAll       string // subcategory
	CreateCategoryText  string // subcategory
	ConfirmSaveCat      string // category, subcategory
	MultiStart          string // unit count
	Progress            string // position, total, subcategory, amount
	AllProcessed        string
	Cancelled           string
	TryAgain            string
	StorageTrouble      string

	UseFoundButton     string // category
	ChooseOtherButton  string
	CreateNewButton    string
	ShowAllButton      string
	CancelButton       string
	PrevPageButton     string
	NextPageButton     string
	Greeting           string
	CategoriesHeader   string
	CategoryRemoved    string // subcategory, category
	CategoryRemoveHint string
	LastHeader         string // count
	NoRecords          string
	TotalLine          string // amount, currency
	SettingsSaved      string // language, currency
	SettingsHint       string
}

var textsEn = Strings{
	TransactionSaved:    "Transaction saved!",
	TransactionError:    "You need to enter an amount, e.g. 'category amount' or 'date category amount'. Please try again.",
	SubcatNotFound:      "I could not find a category for '%s' in your dictionary. Please choose one or create a new one:",
	SubcatFoundOne:      "I found the subcategory '%s' in the category '%s'. Use this category or choose another one?",
	SubcatFoundMultiple: "I found the subcategory '%s' in multiple categories: %s. Please select which one to use:",
	ChooseFromAll:       "Please choose a category for '%s' from all available categories:",
	CreateCategoryText:  "Please enter a new category name for '%s':",
	ConfirmSaveCat:      "Category '%s' has been chosen for subcategory '%s' and saved into the dictionary.",
	MultiStart:          "Processing %d transactions...",
	Progress:            "Transaction %d/%d saved: %s %v",
	AllProcessed:        "All transactions have been processed!",
	Cancelled:           "Transaction cancelled.",
	TryAgain:            "Oops, something went wrong with this transaction entry. Please try again.",
	StorageTrouble:      "Could not reach your records storage, nothing was saved. Please try again later.",

	UseFoundButton:     "Use '%s'",
	ChooseOtherButton:  "Choose another",
	CreateNewButton:    "Create new category",
	ShowAllButton:      "Show all categories",
	CancelButton:       "Cancel",
	PrevPageButton:     "<< Prev",
	NextPageButton:     "Next >>",
	Greeting:           "Welcome! Send me your spendings as 'taxi 5', 'transport taxi 5' or '05.03 transport taxi 5'. Multiple transactions can be separated by commas or new lines.",
	CategoriesHeader:   "Your categories:",
	CategoryRemoved:    "Removed '%s' from category '%s'.",
	CategoryRemoveHint: "To remove a pair: /categories remove <category> <subcategory>",
	LastHeader:         "List of last %d transactions:",
	NoRecords:          "No records found.",
	TotalLine:          "Total: %.2f %s",
	SettingsSaved:      "Settings updated: language '%s', currency '%s'.",
	SettingsHint:       "To change settings: /settings language en|ru or /settings currency USD",
}

var textsRu = Strings{
	TransactionSaved:    "Транзакция сохранена!",
	TransactionError:    "Нужно указать сумму, например 'категория сумма' или 'дата категория сумма'. Попробуйте ещё раз.",
	SubcatNotFound:      "Я не нашёл категорию для '%s' в вашем словаре. Выберите её или создайте новую:",
	SubcatFoundOne:      "Подкатегория '%s' найдена в категории '%s'. Использовать её или выбрать другую?",
	SubcatFoundMultiple: "Подкатегория '%s' найдена в нескольких категориях: %s. Выберите нужную:",
	ChooseFromAll:       "Выберите категорию для '%s' из всех доступных:",
	CreateCategoryText:  "Введите название новой категории для '%s':",
	ConfirmSaveCat:      "Категория '%s' выбрана для подкатегории '%s' и сохранена в словарь.",
	MultiStart:          "Обрабатываю %d транзакций...",
	Progress:            "Транзакция %d/%d сохранена: %s %v",
	AllProcessed:        "Все транзакции обработаны!",
	Cancelled:           "Транзакция отменена.",
	TryAgain:            "Что-то пошло не так с этой транзакцией. Попробуйте ещё раз.",
	StorageTrouble:      "Не удалось обратиться к хранилищу, ничего не сохранено. Попробуйте позже.",

	UseFoundButton:     "Использовать '%s'",
	ChooseOtherButton:  "Выбрать другую",
	CreateNewButton:    "Создать новую категорию",
	ShowAllButton:      "Показать все категории",
	CancelButton:       "Отмена",
	PrevPageButton:     "<< Назад",
	NextPageButton:     "Вперёд >>",
	Greeting:           "Привет! Присылайте траты в виде 'такси 5', 'транспорт такси 5' или '05.03 транспорт такси 5'. Несколько транзакций можно разделить запятыми или переносами строк.",
	CategoriesHeader:   "Ваши категории:",
	CategoryRemoved:    "Подкатегория '%s' удалена из категории '%s'.",
	CategoryRemoveHint: "Чтобы удалить пару: /categories remove <категория> <подкатегория>",
	LastHeader:         "Список последних %d транзакций:",
	NoRecords:          "Записей не найдено.",
	TotalLine:          "Итого: %.2f %s",
	SettingsSaved:      "Настройки обновлены: язык '%s', валюта '%s'.",
	SettingsHint:       "Для изменения настроек: /settings language en|ru или /settings currency USD",
}

// Localize returns the string table for a language code, defaulting to
// English.
func Localize(language string) Strings {
	if language == "ru" {
		return textsRu
	}
	return textsEn
}
