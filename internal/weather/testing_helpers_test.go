package weather

func ptr(v float64) *float64 { return &v }
