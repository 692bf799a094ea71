package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string `gorm:"type:uuid;primary_key"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null;index"`
	CreatedAt    int64  `gorm:"autoCreateTime"`
	UpdatedAt    int64  `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

// ListingModel é o model GORM para anúncios.
// Photos é o PhotoSet serializado como JSON num único campo — a ordem
// das referências importa e o conjunto é pequeno (máx. 10).
type ListingModel struct {
	ID      string `gorm:"type:uuid;primary_key"`
	OwnerID string `gorm:"type:uuid;not null;index:idx_listings_owner_created,priority:1"`

	Brand        string  `gorm:"type:varchar(100);not null;index:idx_listings_brand_model,priority:1"`
	Model        string  `gorm:"type:varchar(100);not null;index:idx_listings_brand_model,priority:2"`
	Year         int     `gorm:"not null;index"`
	Price        int64   `gorm:"not null;index"`
	Description  string  `gorm:"type:varchar(1000);not null"`
	Contacts     string  `gorm:"type:varchar(255);not null"`
	EngineVolume float64 `gorm:"not null"`
	Mileage      int     `gorm:"not null;index"`
	OwnersCount  int     `gorm:"not null"`
	IsDamaged    bool    `gorm:"not null"`
	Transmission string  `gorm:"type:varchar(20);not null"`
	FuelType     string  `gorm:"type:varchar(20);not null"`
	Color        string  `gorm:"type:varchar(50);not null"`

	Photos string `gorm:"type:text;not null"`

	Status         string  `gorm:"type:varchar(20);not null;index"`
	ModerationNote *string `gorm:"type:varchar(500)"`
	ModeratedBy    *string `gorm:"type:uuid"`
	ModeratedAt    *int64

	CreatedAt int64 `gorm:"autoCreateTime;index:idx_listings_owner_created,priority:2"`
	UpdatedAt int64 `gorm:"autoUpdateTime"`
}

func (ListingModel) TableName() string {
	return "listings"
}
