// Package lexicon holds the bilingual (Japanese/English) vocabulary the
// analysis pipeline matches against: rarity tiers, editions, regions,
// condition terms, known valuable cards, and the various value markers.
// The tables are built once by Default() and shared read-only across every
// analysis call; nothing here is mutated at runtime.
package lexicon

import (
	"github.com/cardscout/card-arbitrage/internal/models"
)

// RarityTier pairs a canonical rarity name with the keywords that identify
// it in listing text.
type RarityTier struct {
	Name     string
	Keywords []string
}

// ConditionVocab pairs a condition level with its bilingual keywords.
type ConditionVocab struct {
	Level    models.ConditionLevel
	Keywords []string
}

// ValuableCard is a card name worth flagging on sight, with the set codes
// in which the card actually carries a premium. An empty Sets list means
// any printing is interesting.
type ValuableCard struct {
	Name    string
	Aliases []string
	Sets    []string
}

// Entry is a generic named keyword group used for editions and regions,
// where table order doubles as match priority.
type Entry struct {
	Name     string
	Keywords []string
}

// Lexicons is the canonical keyword configuration for the pipeline.
// Construct with Default() and inject into each component.
type Lexicons struct {
	// RarityTiers is ordered highest tier first. Iteration order is the
	// tie-break: a listing mentioning both "rare" and "secret rare" must
	// resolve to Secret Rare, so higher tiers are tested first.
	RarityTiers []RarityTier

	// HighValueRarities is the "Secret Rare and above" set used by the
	// valuability check, keyed by canonical tier name.
	HighValueRarities map[string]bool

	// Editions is ordered: 1st Edition keywords are checked before
	// Unlimited keywords.
	Editions []Entry

	// Regions is checked in table order: Asia, English, Japanese, Korean.
	Regions []Entry

	// Conditions is ordered best condition first.
	Conditions []ConditionVocab

	// RankConditions maps a seller rank token (S, A, B+) to a condition.
	RankConditions map[string]models.ConditionLevel

	ValuableCards []ValuableCard

	// HighValueConditions are phrases like "gem mint" that signal a
	// premium-grade copy over and above the base condition keywords.
	HighValueConditions []string

	// GradingMarkers indicate a professionally graded card (PSA, BGS, ...).
	GradingMarkers []string

	// TournamentMarkers indicate event, promo, or limited printings.
	TournamentMarkers []string

	// SpecialPrintMarkers indicate misprints, test prints, and samples.
	SpecialPrintMarkers []string

	// ValueIndicators is the broad union of terms that count toward the
	// matched-keyword confidence signal.
	ValueIndicators []string

	// NonCardTerms exclude accessories (playmats, sleeves, deck boxes)
	// at the cheap-filter tier.
	NonCardTerms []string

	// DomainTerms gate the cheap filter: a title must contain at least one
	// to be treated as a card listing at all. Built from the search-term
	// list plus every valuable card name and alias.
	DomainTerms []string
}

// Default builds the canonical lexicon set. English entries are lowercase
// because all matching is done on lowercased text.
func Default() *Lexicons {
	lex := &Lexicons{
		RarityTiers: []RarityTier{
			{Name: "Quarter Century Secret Rare", Keywords: []string{"quarter century secret rare", "quarter century", "クォーターセンチュリーシークレットレア", "クォーターセンチュリー"}},
			{Name: "Prismatic Secret Rare", Keywords: []string{"prismatic secret rare", "プリズマティックシークレットレア"}},
			{Name: "Platinum Secret Rare", Keywords: []string{"platinum secret rare", "プラチナシークレットレア"}},
			{Name: "Gold Secret Rare", Keywords: []string{"gold secret rare", "ゴールドシークレットレア"}},
			{Name: "Ultimate Rare", Keywords: []string{"ultimate rare", "アルティメットレア", "レリーフ"}},
			{Name: "Ghost Rare", Keywords: []string{"ghost rare", "ゴーストレア"}},
			{Name: "Collector's Rare", Keywords: []string{"collector's rare", "collectors rare", "コレクターズレア"}},
			{Name: "Starlight Rare", Keywords: []string{"starlight rare", "スターライトレア"}},
			{Name: "Secret Rare", Keywords: []string{"secret rare", "シークレットレア", "シークレット"}},
			{Name: "Ultra Rare", Keywords: []string{"ultra rare", "ウルトラレア"}},
			{Name: "Platinum Rare", Keywords: []string{"platinum rare", "プラチナレア"}},
			{Name: "Gold Rare", Keywords: []string{"gold rare", "ゴールドレア"}},
			{Name: "Super Rare", Keywords: []string{"super rare", "スーパーレア"}},
			{Name: "Parallel Rare", Keywords: []string{"parallel rare", "パラレルレア", "パラレル"}},
			{Name: "Rare", Keywords: []string{"rare", "レア"}},
			{Name: "Common", Keywords: []string{"common", "コモン", "ノーマル"}},
		},
		HighValueRarities: map[string]bool{
			"Quarter Century Secret Rare": true,
			"Prismatic Secret Rare":       true,
			"Platinum Secret Rare":        true,
			"Gold Secret Rare":            true,
			"Ultimate Rare":               true,
			"Ghost Rare":                  true,
			"Collector's Rare":            true,
			"Starlight Rare":              true,
			"Secret Rare":                 true,
		},
		Editions: []Entry{
			{Name: "1st Edition", Keywords: []string{"1st", "first edition", "初版", "初刷"}},
			{Name: "Unlimited", Keywords: []string{"unlimited", "無制限", "再版", "再刷"}},
		},
		Regions: []Entry{
			{Name: "Asia", Keywords: []string{"asia", "asian", "アジア版", "アジア"}},
			{Name: "English", Keywords: []string{"english", "英語版", "英語"}},
			{Name: "Japanese", Keywords: []string{"japanese", "日本語版", "日本語"}},
			{Name: "Korean", Keywords: []string{"korean", "韓国版", "韓国語版"}},
		},
		Conditions: []ConditionVocab{
			{Level: models.ConditionMint, Keywords: []string{"mint", "ミント", "未使用", "完全美品", "完全無傷", "パーフェクト"}},
			{Level: models.ConditionNearMint, Keywords: []string{"near mint", "ニアミント", "新品同様", "極美品", "ほぼ新品"}},
			{Level: models.ConditionExcellent, Keywords: []string{"excellent", "エクセレント", "美品", "状態良好", "軽微な傷"}},
			{Level: models.ConditionVeryGood, Keywords: []string{"very good", "良品", "小傷あり"}},
			{Level: models.ConditionGood, Keywords: []string{"good", "グッド", "並品", "普通品"}},
			{Level: models.ConditionLightPlayed, Keywords: []string{"light played", "ライトプレイ", "軽度使用", "やや傷あり", "使用感あり"}},
			{Level: models.ConditionPlayed, Keywords: []string{"played", "プレイ済み", "使用済み", "傷あり"}},
			{Level: models.ConditionPoor, Keywords: []string{"poor", "プア", "状態悪い", "破損あり", "大きな傷"}},
		},
		RankConditions: map[string]models.ConditionLevel{
			"SS": models.ConditionMint,
			"S":  models.ConditionMint,
			"A":  models.ConditionNearMint,
			"B+": models.ConditionExcellent,
			"B":  models.ConditionVeryGood,
			"C":  models.ConditionGood,
			"D":  models.ConditionLightPlayed,
			"E":  models.ConditionPlayed,
		},
		ValuableCards: []ValuableCard{
			{Name: "Blue-Eyes White Dragon", Aliases: []string{"青眼の白龍", "ブルーアイズ・ホワイト・ドラゴン"}, Sets: []string{"LOB", "SDK", "SKE", "MVP1"}},
			{Name: "Dark Magician", Aliases: []string{"ブラック・マジシャン"}, Sets: []string{"LOB", "SDY", "SYE", "MVP1"}},
			{Name: "Red-Eyes Black Dragon", Aliases: []string{"レッドアイズ・ブラックドラゴン", "真紅眼の黒竜"}, Sets: []string{"LOB", "SDJ", "SJ2"}},
			{Name: "Exodia the Forbidden One", Aliases: []string{"exodia", "エクゾディア"}, Sets: []string{"LOB", "MC1"}},
			{Name: "Black Luster Soldier", Aliases: []string{"カオス・ソルジャー"}, Sets: []string{"SYE", "YGLD"}},
			{Name: "Chaos Emperor Dragon", Aliases: []string{"カオス・エンペラー・ドラゴン"}, Sets: []string{"IOC", "DR1"}},
			{Name: "Cyber Dragon", Aliases: []string{"サイバー・ドラゴン"}, Sets: []string{"CRV", "RYMP"}},
			{Name: "Elemental Hero Neos", Aliases: []string{"エレメンタル・ヒーロー・ネオス", "ネオス"}, Sets: []string{"STON", "RYMP"}},
			{Name: "Stardust Dragon", Aliases: []string{"スターダスト・ドラゴン"}, Sets: []string{"TDGS", "CT05"}},
			{Name: "Black Rose Dragon", Aliases: []string{"ブラックローズ・ドラゴン"}, Sets: []string{"CSOC", "CT05"}},
			{Name: "Arcanite Magician", Aliases: []string{"アーカナイト・マジシャン"}, Sets: []string{"CRMS", "CT07"}},
		},
		HighValueConditions: []string{
			"perfect", "パーフェクト", "gem mint", "ジェムミント",
			"no scratches", "傷なし", "no wear", "摩耗なし",
			"初期傷なし", "完全美品", "新品同様",
		},
		GradingMarkers: []string{
			"psa", "bgs", "cgc", "graded", "グレード", "鑑定済み",
		},
		TournamentMarkers: []string{
			"tournament", "大会", "championship", "チャンピオンシップ",
			"event", "イベント", "promo", "特典", "limited", "限定",
		},
		SpecialPrintMarkers: []string{
			"misprint", "ミスプリント", "test print", "テスト版",
			"sample", "サンプル", "prototype", "error card", "エラーカード",
		},
		ValueIndicators: []string{
			"limited", "限定", "promo", "特典", "tournament", "大会",
			"championship", "チャンピオンシップ", "event", "イベント",
			"sealed", "未開封", "unopened", "初期", "旧アジア",
			"psa", "bgs", "cgc", "graded", "鑑定済み",
			"error card", "エラーカード",
		},
		NonCardTerms: []string{
			"playmat", "プレイマット", "sleeve", "スリーブ",
			"deck box", "deck case", "デッキケース", "binder", "バインダー",
			"フィギュア", "figure",
		},
		DomainTerms: []string{
			"遊戯王", "yugioh", "yu-gi-oh",
			"アジア", "gb 特典カード", "週刊少年ジャンプ付録",
			"dm1", "東映", "バンダイ", "ダンジョンダイスモンスターズ",
			"アマダ",
		},
	}

	// The domain gate must also pass listings that name a valuable card
	// directly, whether in English or Japanese.
	for _, card := range lex.ValuableCards {
		lex.DomainTerms = append(lex.DomainTerms, card.Name)
		lex.DomainTerms = append(lex.DomainTerms, card.Aliases...)
	}

	return lex
}
