package format

// MenuItems are the archive menu labels in choice order.
var MenuItems = []string{
	"Store new documents from PDFs",
	"Search by date",
	"Search by date and security level",
	"View all stored documents",
	"Clear database",
	"Exit",
}

// Prompts and notices shared by the line shell and the TUI.
const (
	Title          = "docvault"
	DatePrompt     = "Enter date (YYYY-MM-DD): "
	SecurityPrompt = "Enter security level (Public/Confidential/Restricted/Top Secret): "
	ConfirmPrompt  = "Are you sure you want to clear the database? (y/n): "
	DateHint       = "Please enter date in YYYY-MM-DD format"
	Storing        = "Processing and storing documents..."
	Cleared        = "Database cleared."
	Goodbye        = "Thank you for using docvault!"
)
