package conversation

import (
	"fmt"

	"github.com/oekaki/charabot/pkg/charstats"
)

// Outbound message texts. The bot speaks Japanese; mode answers accept both
// Japanese and English tokens (see yesTokens / noTokens).
const (
	MsgSendImage      = "キャラクターの画像を送ってください。"
	MsgIngestFailed   = "画像のアップロードに失敗しました。もう一度画像を送ってください。"
	MsgAskMode        = "ステータスを自分で入力しますか？（はい / いいえ）"
	MsgAskModeRetry   = "「はい」または「いいえ」で答えてください。"
	MsgAskName        = "キャラクターの名前を入力してください。"
	MsgAskDescription = "キャラクターの説明を入力してください。"
	MsgAutoRegistered = "画像からステータスを自動生成して登録します。お楽しみに！"
	MsgCommitFailed   = "登録に失敗しました。最初からやり直すには画像を送ってください。"
)

var (
	MsgNameEmpty   = MsgAskName
	MsgNameTooLong = fmt.Sprintf("名前は%d文字以内で入力してください。", charstats.MaxNameRunes)
)

// PromptFor builds the entry prompt for a numeric field, range included.
func PromptFor(f charstats.Field) string {
	spec, ok := charstats.SpecFor(f)
	if !ok {
		return MsgSendImage
	}
	return fmt.Sprintf("%sを入力してください（%d〜%d）。", spec.Label, spec.Min, spec.Max)
}

// MsgNotANumber is echoed when input for a numeric field is not an integer.
func MsgNotANumber(f charstats.Field) string {
	spec, _ := charstats.SpecFor(f)
	return fmt.Sprintf("%sは数字で入力してください（%d〜%d）。", spec.Label, spec.Min, spec.Max)
}

// MsgOutOfRange is echoed when input for a numeric field is outside its bounds.
func MsgOutOfRange(f charstats.Field) string {
	spec, _ := charstats.SpecFor(f)
	return fmt.Sprintf("%sは%d〜%dの範囲で入力してください。", spec.Label, spec.Min, spec.Max)
}

// MsgBudgetExceeded is sent when the six stats sum above the budget. The
// session is reset; resending an image is the only path forward.
func MsgBudgetExceeded(total int) string {
	return fmt.Sprintf("ステータスの合計が%dで、上限%dを超えています。画像を送り直して最初からやり直してください。",
		total, charstats.MaxStatTotal)
}

// MsgRegistered confirms a completed manual registration.
func MsgRegistered(name string) string {
	return fmt.Sprintf("「%s」を登録しました！", name)
}
