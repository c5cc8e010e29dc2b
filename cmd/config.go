package cmd

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaHost               string
	KafkaOrdersTopic        string
	KafkaPartnersTopic      string
	KafkaNotificationsTopic string
}
