package invoice

// Prompts sent with every extraction request. The model is asked for exactly
// the five fields the client persists onto a transaction.
const (
	systemPrompt = "You are an expert at extracting information from invoices and receipts. " +
		"Extract the following fields from the provided invoice image: " +
		"title (description of purchase), amount (total paid), date (transaction date), " +
		"vendor (store or company name), and category (e.g., Food, Transportation, etc.). " +
		"Return the data in a structured JSON format only."

	userPrompt = "Extract the invoice information from this image and provide ONLY a JSON " +
		"response with title, amount (as a number), date (in YYYY-MM-DD format), vendor, " +
		"and category fields. Make your best guess for categorization."
)

// DefaultModel is the vision model used when none is configured.
const DefaultModel = "gemini-2.5-flash"
