package catalog

// SeedDefinitions returns the built-in starter set used when no external
// catalog backend is configured. Names keep the full-width brackets used on
// the printed cards; the bracketed token is what deck lists reference.
func SeedDefinitions() []*CardDefinition {
	return []*CardDefinition{
		{
			ID: "BP01-001", Name: "《うるか》", Type: TypeLeader,
			Leader:     &LeaderStats{BaseHP: 100, BaseATK: 30, AwakenedHP: 130, AwakenedATK: 40},
			EffectText: "【覚醒時】カードを1枚引く。",
		},
		{
			ID: "BP01-002", Name: "《ぷてち》", Type: TypeLeader,
			Leader: &LeaderStats{BaseHP: 90, BaseATK: 35, AwakenedHP: 120, AwakenedATK: 45},
		},
		{
			ID: "BP01-003", Name: "《レグルシュ》", Type: TypeLeader,
			Leader: &LeaderStats{BaseHP: 110, BaseATK: 25, AwakenedHP: 140, AwakenedATK: 35},
		},
		{
			ID: "BP01-004", Name: "《ミコト》", Type: TypeLeader,
			Leader: &LeaderStats{BaseHP: 95, BaseATK: 30, AwakenedHP: 125, AwakenedATK: 40},
		},
		{
			ID: "CS01-T01", Name: "《PPチケット》", Type: TypeTactics,
			Cost: 0, EffectText: "PPを1回復する",
		},
		{
			ID: "CS01-T02", Name: "《デッド・オア・アライブ》", Type: TypeTactics,
			Cost: 0,
		},
		{
			ID: "CS01-001", Name: "《ブライアントショット》", Type: TypeAttack,
			Cost: 1,
		},
		{
			ID: "CS01-002", Name: "《序章》", Type: TypeMemoria,
			Cost: 0,
		},
	}
}
