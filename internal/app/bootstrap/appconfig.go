// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging); AppConfig is everything
// specific to EnrollHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: enrollhub-session)
	SessionDomain string // Cookie domain (blank means current host)

	// File storage configuration for uploaded application documents
	StorageLocalPath string // Local storage path (e.g., "./uploads/documents")
	StorageLocalURL  string // URL prefix for serving stored files (e.g., "/uploads")

	// Email/SMTP configuration for applicant notifications
	MailSMTPHost string // SMTP server host (blank disables the mailer)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name

	// Site identity used in emails and links
	SiteName string // e.g., "EnrollHub"
	BaseURL  string // e.g., "https://enroll.example.org" or "http://localhost:8080"

	// Audit logging settings: "all" (db+log), "db", "log", or "off"
	AuditLogAuth  string
	AuditLogAdmin string

	// Rate limiting for register/login (requests per window per client IP)
	AuthRateLimit  int
	AuthRateWindow string // duration string, e.g. "1m"

	// Initial admin bootstrap (created on startup when missing)
	AdminEmail    string
	AdminPassword string
}
