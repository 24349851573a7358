package strategies

// DefaultPresets holds the per-ticker tuning the robot ships with.
// take_profit sits well above the round-trip commission, min_range is
// raised enough to skip choppy ranges, and stop_loss is wide enough not
// to trigger on noise. Configs are copied by value into strategies; the
// table itself is never mutated at runtime.
func DefaultPresets() map[string]RSIConfig {
	preset := func(window int, minRange, takeProfit, stopLoss float64, tradeCount int) RSIConfig {
		cfg := RSIDefaults()
		cfg.Window = window
		cfg.MinRange = minRange
		cfg.TakeProfit = takeProfit
		cfg.StopLoss = stopLoss
		cfg.TradeCount = tradeCount
		return cfg
	}

	return map[string]RSIConfig{
		"MTSS": preset(21, 0.001, 0.01, 0.007, 2),
		"MOEX": preset(21, 0.0015, 0.015, 0.009, 2),
		"VKCO": preset(14, 0.0015, 0.025, 0.012, 2),
		"OZON": preset(14, 0.0015, 0.03, 0.015, 2),
		"SBER": preset(21, 0.0012, 0.012, 0.007, 5),
		"GAZP": preset(21, 0.0012, 0.012, 0.007, 3),
		"LKOH": preset(14, 0.0015, 0.018, 0.009, 1),
		"GMKN": preset(14, 0.0018, 0.02, 0.01, 1),
		"NVTK": preset(14, 0.0015, 0.015, 0.008, 2),
		"PLZL": preset(14, 0.0018, 0.018, 0.009, 1),
		"ROSN": preset(14, 0.0015, 0.014, 0.007, 2),
		"TATN": preset(14, 0.0015, 0.013, 0.007, 2),
		"CHMF": preset(14, 0.0015, 0.015, 0.008, 2),
	}
}
