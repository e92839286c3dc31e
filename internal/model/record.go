package model

// BridalEvent はブライダル案件（受注イベント）を表す。
// UserIDは所有者を示し、作成・更新時に認証済みユーザーで上書きされる。
// Dateは "YYYY-MM-DD" 形式の文字列。
type BridalEvent struct {
	ID          int64
	Date        string
	EventName   string
	ClientName  string
	ServiceType string
	Amount      float64
	Notes       string
	UserID      int64
}

// Expense は経費レコードを表す。
// 所有モデルはBridalEventと同一で、UserIDが所有者を示す。
type Expense struct {
	ID          int64
	Date        string
	ExpenseName string
	Description string
	ServiceType string
	Amount      float64
	Notes       string
	UserID      int64
}

// MonthlyProfit は月次収支の集計結果を表す。
// Monthは "YYYY-MM" 形式。Incomeはイベント売上、Expensesは経費の合計。
type MonthlyProfit struct {
	Month    string
	Income   float64
	Expenses float64
	Profit   float64
}
