package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyCCTLogDir string = "CCT_LOG_DIR"

	EnvKeyCCTDBType string = "CCT_DB_TYPE"
	EnvKeyCCTDbPath string = "CCT_DB_PATH"
	EnvKeyCCTDbDSN  string = "CCT_DB_DSN"

	EnvKeyCCTHttpHostPort string = "CCT_HTTP_HOST_PORT"
	EnvKeyCCTGrpcHostPort string = "CCT_GRPC_HOST_PORT"

	EnvKeyCCTDefaultRate  string = "CCT_DEFAULT_RATE"
	EnvKeyCCTDefaultBurst string = "CCT_DEFAULT_BURST"

	EnvKeyCCTSecretKey                string = "CCT_SECRET_KEY"
	EnvKeyCCTAccessTokenExpireMinutes string = "CCT_ACCESS_TOKEN_EXPIRE_MINUTES"
	EnvKeyCCTAPIKeyExpireDays         string = "CCT_API_KEY_EXPIRE_DAYS"

	EnvKeyCCTMaxProbesPerDevice       string = "CCT_MAX_PROBES_PER_DEVICE"
	EnvKeyCCTConnectionTimeoutSeconds string = "CCT_CONNECTION_TIMEOUT_SECONDS"
	EnvKeyCCTLivenessSchedule         string = "CCT_LIVENESS_SCHEDULE"
	EnvKeyCCTEqualTolerance           string = "CCT_EQUAL_TOLERANCE"

	EnvKeyCCTEmailEnabled string = "CCT_EMAIL_ENABLED"
	EnvKeyCCTSMSEnabled   string = "CCT_SMS_ENABLED"
	EnvKeyCCTPushEnabled  string = "CCT_PUSH_ENABLED"

	EnvKeySMTPHost     string = "SMTP_SERVER"
	EnvKeySMTPPort     string = "SMTP_PORT"
	EnvKeySMTPUsername string = "SMTP_USERNAME"
	EnvKeySMTPPassword string = "SMTP_PASSWORD"
	EnvKeyEmailFrom    string = "EMAIL_FROM"

	EnvKeySMSProviderURL    string = "SMS_PROVIDER_URL"
	EnvKeySMSProviderAPIKey string = "SMS_PROVIDER_API_KEY"
	EnvKeyPushProviderURL   string = "PUSH_PROVIDER_URL"

	EnvKeyCCTMQTTBrokerURL string = "CCT_MQTT_BROKER_URL"
	EnvKeyCCTMQTTTopic     string = "CCT_MQTT_TOPIC"

	EnvKeyCCTRequireEmailVerification string = "CCT_REQUIRE_EMAIL_VERIFICATION"
	EnvKeyCCTOTPExpireMinutes         string = "CCT_OTP_EXPIRE_MINUTES"

	LoggerNameCCTCore       string = "cct_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameMQTTIngest    string = "mqtt_ingest"
	LoggerNameScheduler     string = "scheduler"
	LoggerNameNotify        string = "notify"

	LoggerFieldCCTCategory string = "category"

	LoggerCategoryIdentity     string = "identity"
	LoggerCategoryCredential   string = "credential"
	LoggerCategoryTemperature  string = "temperature"
	LoggerCategoryTrigger      string = "trigger"
	LoggerCategoryNotification string = "notification"
	LoggerCategoryLiveness     string = "liveness"
	LoggerCategorySettings     string = "settings"
	LoggerCategoryUser         string = "user"
	LoggerCategoryOTP          string = "otp"
)
