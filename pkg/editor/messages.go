package editor

import (
	"strings"

	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// Status lines shown above the edit form.
const (
	MsgIdle             = "変更は自動でローカル保存されます。"
	MsgLoading          = "サーバーから読み込み中..."
	MsgSaving           = "サーバーへ保存中..."
	MsgLoadUnconfigured = "API未設定のため読み込みできません。"
	MsgSaveUnconfigured = "API未設定のため保存できません。"
	MsgRemoteEmpty      = "サーバーにはテンプレートが未登録でした。既定値を使用します。"
	MsgInvoiceEmpty     = "サーバーには請求書設定が未登録でした。既定値を使用します。"
	MsgDeliveryEmpty    = "サーバーには納品書設定が未登録でした。既定値を使用します。"
	MsgLoaded           = "サーバーのテンプレートを読み込みました。"
	MsgInvoiceLoaded    = "請求書設定を読み込みました。"
	MsgDeliveryLoaded   = "納品書設定を読み込みました。"
	MsgSaved            = "サーバーに保存しました。"
	MsgArSaved          = "帳票設定を保存しました。プレビューを更新できます。"
	MsgReset            = "既定値に戻しました。"

	loadFailedPrefix = "読み込みに失敗しました: "
	saveFailedPrefix = "保存に失敗しました: "
)

// Connection helper strings.
const (
	HelperTitle    = "接続先"
	HelperUnset    = "未設定"
	noteAr         = "保存は accounts-receivable の設定に反映されます。"
	noteFV         = "保存は foreign-visitor-system のKVに反映されます。"
	noteSalesKV    = "保存は mine-trout-cash のKVに反映されます。"
	fallbackHeader = "編集パネル"
)

func loadedMessages(kind schema.Kind) (empty, loaded string) {
	switch kind {
	case schema.KindArInvoice:
		return MsgInvoiceEmpty, MsgInvoiceLoaded
	case schema.KindArDeliveryNote:
		return MsgDeliveryEmpty, MsgDeliveryLoaded
	default:
		return MsgRemoteEmpty, MsgLoaded
	}
}

func savedMessage(kind schema.Kind) string {
	if kind.IsAccountsReceivable() {
		return MsgArSaved
	}
	return MsgSaved
}

// FailureText is the part of a failed load or save shown after the prefix:
// "HTTP 500" for status failures, the error text otherwise.
func FailureText(err error) string {
	if code := remote.StatusCodeOf(err); code > 0 {
		return remote.StatusError{Code: code}.Error()
	}
	return err.Error()
}

func familyNote(family schema.Family) string {
	switch family {
	case schema.FamilyAccountsReceivable:
		return noteAr
	case schema.FamilyForeignVisitor:
		return noteFV
	default:
		return noteSalesKV
	}
}

// Failed reports whether status describes a load or save that did not
// reach the backend or was refused by it.
func Failed(status string) bool {
	switch {
	case status == MsgLoadUnconfigured, status == MsgSaveUnconfigured:
		return true
	case strings.HasPrefix(status, loadFailedPrefix), strings.HasPrefix(status, saveFailedPrefix):
		return true
	}
	return false
}
