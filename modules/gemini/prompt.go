package gemini

// buildEditPrompt - 촬영 사진 편집용 지시 프롬프트 생성
// 포토부스 특성상 인물 동일성 유지가 최우선이라 지시를 강하게 건다
func buildEditPrompt(userPrompt string) string {
	instruction := "[CRITICAL - IDENTITY PRESERVATION]\n" +
		"You are editing a photobooth photograph of real people.\n" +
		"The people in the output MUST be the SAME people as in the reference photo.\n" +
		"Keep the EXACT same faces, facial features, expressions, pose and framing.\n" +
		"Apply ONLY the styling described below - never replace or redraw the subjects.\n\n" +
		"[REQUIRED OUTPUT]\n" +
		"✓ Same person/people, same pose, same camera framing as the reference\n" +
		"✓ One single photograph, filling the entire frame edge-to-edge\n" +
		"✓ Photorealistic, highly detailed\n\n" +
		"[ABSOLUTELY FORBIDDEN]\n" +
		"❌ Changing face shape, skin tone or identity of any person\n" +
		"❌ Adding or removing people\n" +
		"❌ Collage, split screen or product layout\n"

	if userPrompt != "" {
		instruction += "\n[STYLING REQUEST]\n" + userPrompt
	}

	return instruction
}
