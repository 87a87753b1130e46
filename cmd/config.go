package cmd

import "fmt"

// Config carries the process configuration read from the environment.
// Zero values for the event bus knobs mean "use the adapter defaults".
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL             string
	EventMaxRetries     int
	EventRetryBaseDelay string
	EventPrefetch       int

	AssignmentCronSpec string
}

// DSN builds the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
