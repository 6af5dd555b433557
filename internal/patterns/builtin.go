package patterns

// BuiltinParameters returns the parameter pattern table consulted by the
// NLP Engine and Confidence Evaluator. Every regex here is matched
// case-insensitively by Load; do not repeat the "(?i)" prefix.
func BuiltinParameters() []*ParameterPattern {
	return []*ParameterPattern{
		{
			Name: "drone_id",
			RegexSources: []string{
				`ドローン\s*([A-Za-z0-9_-]+)`,
				`drones?\s+([A-Za-z0-9_-]+)`,
				`\bid[:\s]+([A-Za-z0-9_-]+)`,
			},
			Type:      TypeString,
			Converter: ConvertString,
			Validator: ValidateNonEmptyString,
			Examples:  []string{"ドローンAAに接続して", "connect drone AA"},
		},
		{
			Name: "distance",
			RegexSources: []string{
				`(\d+(?:\.\d+)?\s*(?:センチメートル|センチ|cm))`,
				`(\d+(?:\.\d+)?\s*(?:ミリメートル|ミリ|mm))`,
				`(\d+(?:\.\d+)?\s*(?:メートル|m))`,
			},
			Type:      TypeNumber,
			Converter: ConvertDistanceCM,
			Validator: ValidateDistanceCM,
			Examples:  []string{"前に2m移動して", "move forward 200cm"},
		},
		{
			Name: "height",
			RegexSources: []string{
				`(\d+(?:\.\d+)?\s*(?:センチメートル|センチ|cm))`,
				`(\d+(?:\.\d+)?\s*(?:ミリメートル|ミリ|mm))`,
				`(\d+(?:\.\d+)?\s*(?:メートル|m))`,
			},
			Type:      TypeNumber,
			Converter: ConvertDistanceCM,
			Validator: ValidateDistanceCM,
			Examples:  []string{"高さ1.5mまで上昇して", "set altitude to 150cm"},
		},
		{
			Name: "angle",
			RegexSources: []string{
				`(\d+(?:\.\d+)?)\s*度`,
				`(\d+(?:\.\d+)?)\s*deg(?:rees?)?`,
			},
			Type:      TypeNumber,
			Converter: ConvertNumber,
			Validator: ValidateAngle,
			Examples:  []string{"時計回りに90度回転", "rotate 90 degrees clockwise"},
		},
		{
			Name: "direction",
			RegexSources: []string{
				`(上昇|下降|上|下|左|右|前方|前進|前|後方|後退|後ろ|時計回り|右回り|反時計回り|左回り)`,
				`\b(up|down|left|right|forward|backward|back|clockwise|anticlockwise|counterclockwise)\b`,
			},
			Type:      TypeString,
			Converter: ConvertDirection,
			Validator: ValidateDirection,
			Examples:  []string{"rotate clockwise 90 degrees", "前に2m移動して"},
		},
		{
			Name: "quality",
			RegexSources: []string{
				`(最低画質|最低|低画質|低|標準|普通|中|高画質|高|最高画質|最高|超高画質)`,
				`\b(lowest|basic|low|normal|medium|high|super|ultra|highest)\b`,
			},
			Type:      TypeString,
			Converter: ConvertQuality,
			Validator: ValidateQuality,
			Examples:  []string{"高画質で写真を撮って", "take a high quality photo"},
		},
		{
			Name: "filename",
			RegexSources: []string{
				`(?:filename|ファイル名)[:：]?\s*["']?([\w.\-]+)["']?`,
			},
			Type:      TypeString,
			Converter: ConvertString,
			Validator: ValidateNonEmptyString,
			Examples:  []string{`save as filename:shot1.jpg`},
		},
		{
			Name: "target_class",
			RegexSources: []string{
				`(?:detect|検出|認識)\s*(?:the\s+)?([A-Za-z\p{Han}\p{Hiragana}\p{Katakana}]+)`,
			},
			Type:      TypeString,
			Converter: ConvertString,
			Validator: ValidateNonEmptyString,
			Examples:  []string{"detect person", "人を検出して"},
		},
		{
			Name: "confidence_threshold",
			RegexSources: []string{
				`閾値\s*(\d+(?:\.\d+)?)`,
				`threshold\s*(?:of|=|:)?\s*(\d+(?:\.\d+)?)`,
			},
			Type:      TypeNumber,
			Converter: ConvertNumber,
			Validator: ValidateConfidenceThreshold,
			Examples:  []string{"detect person threshold 0.8"},
		},
	}
}

// BuiltinActions returns the action pattern table the NLP Engine scores
// input text against. Declaration order is the tie-break order for
// equal-scoring actions.
func BuiltinActions() []*ActionPattern {
	return []*ActionPattern{
		{
			Name: "connect",
			RegexSources: []string{
				`接続して?`,
				`つないで`,
				`\bconnect\b`,
			},
			BaseConfidence:   0.85,
			RequiredParams:   []string{"drone_id"},
			Examples:         []string{"ドローンAAに接続して", "connect to drone AA"},
			MorphemeEvidence: []string{"接続", "connect"},
		},
		{
			Name: "disconnect",
			RegexSources: []string{
				`切断して?`,
				`\bdisconnect\b`,
			},
			BaseConfidence:   0.85,
			RequiredParams:   []string{"drone_id"},
			Examples:         []string{"ドローンAAを切断して", "disconnect drone AA"},
			MorphemeEvidence: []string{"切断", "disconnect"},
		},
		{
			Name: "takeoff",
			RegexSources: []string{
				`離陸して?`,
				`飛び立って`,
				`\btake\s*off\b`,
			},
			BaseConfidence:   0.9,
			OptionalParams:   []string{"height"},
			Examples:         []string{"離陸して", "take off to 1.5m"},
			MorphemeEvidence: []string{"離陸", "takeoff"},
		},
		{
			Name: "land",
			RegexSources: []string{
				`着陸して?`,
				`降りて`,
				`\bland\b`,
			},
			BaseConfidence:   0.9,
			Examples:         []string{"着陸して", "land now"},
			MorphemeEvidence: []string{"着陸", "land"},
		},
		{
			Name: "emergency_stop",
			RegexSources: []string{
				`緊急停止`,
				`今すぐ止まって`,
				`\bemergency\s*stop\b`,
			},
			BaseConfidence:   0.95,
			Examples:         []string{"緊急停止して", "emergency stop"},
			MorphemeEvidence: []string{"緊急停止", "emergency"},
		},
		{
			Name: "move",
			RegexSources: []string{
				`移動して?`,
				`進んで`,
				`\bmove\b`,
			},
			BaseConfidence:   0.8,
			RequiredParams:   []string{"direction", "distance"},
			Examples:         []string{"前に2m移動して", "move forward 200cm"},
			MorphemeEvidence: []string{"移動", "move"},
		},
		{
			Name: "rotate",
			RegexSources: []string{
				`回転して?`,
				`回って`,
				`\brotate\b`,
				`\bturn\b`,
			},
			BaseConfidence:   0.8,
			RequiredParams:   []string{"direction", "angle"},
			Examples:         []string{"時計回りに90度回転", "rotate clockwise 90 degrees"},
			MorphemeEvidence: []string{"回転", "rotate"},
		},
		{
			Name: "altitude",
			RegexSources: []string{
				`高度を?(?:設定|変更)して?`,
				`\bset\s*altitude\b`,
				`\baltitude\b`,
			},
			BaseConfidence:   0.8,
			RequiredParams:   []string{"height"},
			Examples:         []string{"高さ1.5mまで上昇して", "set altitude to 150cm"},
			MorphemeEvidence: []string{"高度", "altitude"},
		},
		{
			Name: "take_photo",
			RegexSources: []string{
				`写真を?撮って?`,
				`撮影して`,
				`\btake\s*(?:a\s*)?photo\b`,
				`\bcapture\s*(?:a\s*)?(?:photo|picture)\b`,
			},
			BaseConfidence:   0.85,
			OptionalParams:   []string{"quality", "filename"},
			Examples:         []string{"写真を撮って", "take a high quality photo"},
			MorphemeEvidence: []string{"写真", "photo"},
		},
		{
			Name: "start_streaming",
			RegexSources: []string{
				`配信を?開始して?`,
				`ストリーミングを?開始して?`,
				`\bstart\s*stream(?:ing)?\b`,
			},
			BaseConfidence:   0.8,
			OptionalParams:   []string{"quality"},
			Examples:         []string{"配信を開始して", "start streaming"},
			MorphemeEvidence: []string{"配信", "stream"},
		},
		{
			Name: "stop_streaming",
			RegexSources: []string{
				`配信を?停止して?`,
				`ストリーミングを?停止して?`,
				`\bstop\s*stream(?:ing)?\b`,
			},
			BaseConfidence:   0.8,
			Examples:         []string{"配信を停止して", "stop streaming"},
			MorphemeEvidence: []string{"配信停止", "stop stream"},
		},
		{
			Name: "detect_objects",
			RegexSources: []string{
				`検出して?`,
				`認識して?`,
				`\bdetect\b`,
			},
			BaseConfidence:   0.8,
			RequiredParams:   []string{"target_class"},
			OptionalParams:   []string{"confidence_threshold"},
			Examples:         []string{"人を検出して", "detect person"},
			MorphemeEvidence: []string{"検出", "detect"},
		},
		{
			Name: "start_tracking",
			RegexSources: []string{
				`追跡を?開始して?`,
				`追いかけて`,
				`\bstart\s*track(?:ing)?\b`,
				`\bfollow\b`,
			},
			BaseConfidence:   0.8,
			RequiredParams:   []string{"target_class"},
			Examples:         []string{"人を追跡して", "start tracking the person"},
			MorphemeEvidence: []string{"追跡", "track"},
		},
		{
			Name: "stop_tracking",
			RegexSources: []string{
				`追跡を?停止して?`,
				`\bstop\s*track(?:ing)?\b`,
			},
			BaseConfidence:   0.8,
			Examples:         []string{"追跡を停止して", "stop tracking"},
			MorphemeEvidence: []string{"追跡停止", "stop track"},
		},
		{
			Name: "get_status",
			RegexSources: []string{
				`状態を?(?:教えて|確認して|見せて)`,
				`ステータス`,
				`\bstatus\b`,
			},
			BaseConfidence:   0.7,
			OptionalParams:   []string{"drone_id"},
			Examples:         []string{"ドローンAAの状態を教えて", "what's the status of drone AA"},
			MorphemeEvidence: []string{"状態", "status"},
		},
		{
			Name: "health_check",
			RegexSources: []string{
				`ヘルスチェック`,
				`システムは?正常`,
				`\bhealth\s*check\b`,
			},
			BaseConfidence:   0.7,
			Examples:         []string{"ヘルスチェックして", "run a health check"},
			MorphemeEvidence: []string{"ヘルスチェック", "health"},
		},
	}
}
