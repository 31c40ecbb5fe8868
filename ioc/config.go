package ioc

import "github.com/spf13/viper"

// ValidateConfig reports configuration gaps. All of them are degraded but
// runnable states, so callers decide what is fatal.
func ValidateConfig() []string {
	var issues []string

	if viper.GetString("sources.fmp_api_key") == "" &&
		viper.GetString("sources.finnhub_api_key") == "" {
		issues = append(issues,
			"⚠️  No keyed data source configured, only SEC EDGAR headlines will be scanned. Set sources.fmp_api_key or sources.finnhub_api_key.")
	}
	if InitLLM() == nil {
		issues = append(issues,
			"⚠️  No LLM provider configured, alerts will not carry AI analysis. Set llm.provider plus its api_key.")
	}
	if !HasTelegram() && !HasEmail() {
		issues = append(issues,
			"⚠️  No alert channel configured, scan results will only be logged. Set alerts.telegram or alerts.email credentials.")
	}
	return issues
}

func HasTelegram() bool {
	return viper.GetString("alerts.telegram.bot_token") != "" &&
		viper.GetString("alerts.telegram.chat_id") != ""
}

func HasEmail() bool {
	return viper.GetString("alerts.email.user") != "" &&
		viper.GetString("alerts.email.password") != "" &&
		viper.GetString("alerts.email.to") != ""
}
