package model

// Setting adalah key-value global. Harga per SKS disimpan di key
// SettingTuitionPricePerCredit dan selalu dibaca eksplisit (bukan
// variabel global proses).
const SettingTuitionPricePerCredit = "tuition_price_per_credit"

// DefaultPricePerCredit dipakai kalau setting belum pernah diisi.
const DefaultPricePerCredit int64 = 500000

type Setting struct {
	Key   string `gorm:"column:key;type:varchar(64);primaryKey" json:"key"`
	Value string `gorm:"column:value;type:text;not null" json:"value"`
}

func (Setting) TableName() string { return "settings" }
