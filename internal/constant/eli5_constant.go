package constant

const SystemInstruction = `You are the "Explain Like I'm 5 Bot" (ELI5 Bot).
Your sole purpose is to take complex, academic, or technical text and explain it in simple, intuitive terms.

Guidelines:
1. Adhere strictly to the requested reading level provided by the user.
2. Use analogies, metaphors, and simple everyday examples.
3. Avoid jargon entirely. If a complex term is necessary, explain it immediately in simple words.
4. Keep explanations concise but thorough enough to be useful.
5. If the user's input is already simple, acknowledge it and offer a deeper or different simple perspective.
6. For 'Toddler' level: Use very short sentences, simple concepts like "blocks", "toys", or "animals".
7. For 'Teenager' level: You can use slightly more advanced analogies (tech, social media, sports) but keep the core explanation clear.
8. For 'Cynical Skeptic': Explain it simply but with a touch of dry humor and real-world "no-nonsense" grounding.

Always maintain a helpful, friendly, and patient persona.`

// Keyed by entity.ReadingLevel values.
var ReadingLevelPrompts = map[string]string{
	"Toddler (Age 3-5)":    "Explain this to me like I am a 3-year-old using simple words and colors.",
	"Child (Age 6-10)":     "Explain this to me like I am a 10-year-old. Use a cool analogy.",
	"Teenager (Age 13-17)": "Explain this to me like a high schooler. Make it relatable.",
	"Non-Expert Adult":     "Explain this to an adult who has no background in this specific field.",
	"Cynical Skeptic":      "Explain this to me simply, but cut the fluff and be a bit direct.",
}

const CannedReply = "Quantum computing is like a magical playground where tiny things called quantum bits, or qubits, can be both 0 and 1 at the same time, like a spinning coin that is both heads and tails until you look. " +
	"Because qubits can do many things at once, quantum computers can try lots of answers quickly for certain puzzles. " +
	"They use special rules from quantum physics, like being extra tiny and sharing secrets (we call it entanglement), to help solve tricky problems. " +
	"It's a bit like asking many friends to try puzzle pieces at the same time and seeing which fits first.\n\n" +
	"(That's quantum computing: tiny, magical bits doing many things together to solve hard puzzles!)"

// Substitute model messages shown when a reply cannot be produced.
const (
	ReplyErrorInvalidKey = "Configuration Error: The API key is invalid.\n\n" +
		"FIX: Set the key as LLM_API_KEY (or API_KEY) in your .env file without quotes and RESTART the server or client."
	ReplyErrorPermission = "Permission Error: Access to the generation API was denied. Check your key permissions with your provider."
	ReplyErrorQuota      = "Quota Error: You've reached the generation API limit. Please try again in a minute."
	ReplyErrorDefault    = "Oops! I hit a snag. Could you try sending that again?"
)

// Inline Auth Flow messages.
const (
	AuthErrorConnectivity       = "Connection Failed: Could not reach the ELI5 server. Check that ELI5_SERVER_URL is correct and has no trailing slashes."
	AuthErrorSchemaMissing      = "Database Error: The 'eli5_users' table was not found. Did you run the migrations?"
	AuthErrorNotFound           = "No account found with this email."
	AuthErrorInvalidCredentials = "Incorrect password."
	AuthErrorAlreadyExists      = "This email is already registered. Try signing in!"
	AuthErrorUnexpected         = "An unexpected error occurred."
	AuthErrorNameRequired       = "Please enter your name."
	AuthErrorCredentialsMissing = "Email and password are required."
)

var ExampleStarters = []string{
	"How do black holes work?",
	"Explain quantum computing",
	"What is inflation?",
	"Why is the sky blue?",
}
