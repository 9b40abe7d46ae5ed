package config

import "testing"

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	if c.AppPort != "8080" {
		t.Errorf("AppPort default = %q, want 8080", c.AppPort)
	}
	if c.CheckinRewardPoints != 10 {
		t.Errorf("CheckinRewardPoints default = %d, want 10", c.CheckinRewardPoints)
	}
	if c.ChallengeDefaultPoints != 20 {
		t.Errorf("ChallengeDefaultPoints default = %d, want 20", c.ChallengeDefaultPoints)
	}
	if c.RateLimitPerMinute != 60 {
		t.Errorf("RateLimitPerMinute default = %d, want 60", c.RateLimitPerMinute)
	}
	if len(c.AllowedOrigins) != 1 || c.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins default = %v, want [*]", c.AllowedOrigins)
	}
	if c.DBName != "lovepoints" {
		t.Errorf("DBName default = %q, want lovepoints", c.DBName)
	}
}

func TestApplyDefaultsKeepsExistingValues(t *testing.T) {
	c := AppConfig{CheckinRewardPoints: 25, AppPort: "9000"}
	applyDefaults(&c)

	if c.CheckinRewardPoints != 25 {
		t.Errorf("existing CheckinRewardPoints overwritten: %d", c.CheckinRewardPoints)
	}
	if c.AppPort != "9000" {
		t.Errorf("existing AppPort overwritten: %q", c.AppPort)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "7070")
	t.Setenv("CHECKIN_REWARD", "15")
	t.Setenv("CHALLENGE_DEFAULT_POINTS", "30")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	if c.AppPort != "7070" {
		t.Errorf("APP_PORT override ignored: %q", c.AppPort)
	}
	if c.CheckinRewardPoints != 15 {
		t.Errorf("CHECKIN_REWARD override ignored: %d", c.CheckinRewardPoints)
	}
	if c.ChallengeDefaultPoints != 30 {
		t.Errorf("CHALLENGE_DEFAULT_POINTS override ignored: %d", c.ChallengeDefaultPoints)
	}
	if len(c.AllowedOrigins) != 2 || c.AllowedOrigins[0] != "https://a.example" {
		t.Errorf("CORS_ALLOWED_ORIGINS override ignored: %v", c.AllowedOrigins)
	}
}

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" a , ,b,")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitAndTrim = %v, want [a b]", got)
	}
}
