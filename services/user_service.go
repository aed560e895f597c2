package services

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pallavigowda6789-tech/attendance-system/models"
)

// UserService ดูแล user records ทั้งหมด: resolve principal, provision บัญชีใหม่
// และงาน admin (role/enable/delete)
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

// จำนวนรอบสูงสุดของ loop เติม suffix ตอน provision username
// ก่อนยอมแพ้เป็น DUPLICATE_IDENTITY (กัน loop ไม่จบใต้ race หนัก ๆ)
const maxUsernameAttempts = 50

// ResolvePrincipal map descriptor จากชั้น auth ให้เป็น user หนึ่งคนเสมอ
// กรณี OAuth/OIDC จะ provision บัญชีใหม่ให้ถ้า email ไม่เคยเห็น;
// กรณี form/bare คืน (nil, nil) เมื่อหาไม่เจอ ให้ caller ตีความเป็น login ผิด
func (s *UserService) ResolvePrincipal(p Principal) (*models.User, error) {
	switch p.Kind {
	case PrincipalOAuth2:
		return s.resolveExternal(p.normalizeOAuth2())
	case PrincipalOIDC:
		return s.resolveExternal(p)
	case PrincipalForm, PrincipalBare:
		return s.findByUsernameOrEmail(p.Identifier)
	default:
		return nil, invalidOp("unknown principal kind")
	}
}

func (s *UserService) resolveExternal(p Principal) (*models.User, error) {
	email := strings.TrimSpace(strings.ToLower(p.Email))
	if email == "" {
		return nil, ErrMissingEmail
	}

	var u models.User
	err := s.db.Where("email = ?", email).First(&u).Error
	if err == nil {
		s.refreshProfile(&u, p)
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.ProvisionOAuthUser(email, p.GivenName, p.FamilyName, p.FullName, p.Subject, p.Provider)
}

// refreshProfile อัปเดตฟิลด์โปรไฟล์จากฝั่ง provider เฉพาะเมื่อค่าต่างจริง
func (s *UserService) refreshProfile(u *models.User, p Principal) {
	updates := map[string]any{}
	if p.GivenName != "" && p.GivenName != u.FirstName {
		updates["first_name"] = p.GivenName
	}
	if p.FamilyName != "" && p.FamilyName != u.LastName {
		updates["last_name"] = p.FamilyName
	}
	if p.Subject != "" && p.Subject != u.ProviderID {
		updates["provider_id"] = p.Subject
	}
	if len(updates) == 0 {
		return
	}
	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		// best-effort: โปรไฟล์เก่าไม่กระทบการ login
		log.Printf("[user] refresh profile for %s failed: %v", u.Email, err)
	}
}

// ProvisionOAuthUser สร้างบัญชีใหม่จาก identity ภายนอก — username เอามาจาก
// local part ของ email แล้วเติมเลขต่อท้ายจนกว่าจะว่าง ความถูกต้องจริงอยู่ที่
// unique constraint ของ DB; เช็คฝั่งแอปเป็นแค่ fast path
func (s *UserService) ProvisionOAuthUser(email, firstName, lastName, fullName, externalID, provider string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrMissingEmail
	}
	if firstName == "" && fullName != "" {
		parts := strings.SplitN(fullName, " ", 2)
		firstName = parts[0]
		if lastName == "" && len(parts) > 1 {
			lastName = parts[1]
		}
	}
	if provider == "" {
		provider = models.ProviderGoogle
	}

	base, _, _ := strings.Cut(email, "@")
	if base == "" {
		base = "user"
	}
	candidate := base
	for i := 1; i <= maxUsernameAttempts; i++ {
		taken, err := s.UsernameExists(candidate)
		if err != nil {
			return nil, err
		}
		if taken {
			candidate = base + strconv.Itoa(i)
			continue
		}

		u := models.User{
			Username:     candidate,
			Email:        email,
			FirstName:    firstName,
			LastName:     lastName,
			Role:         models.RoleUser,
			Enabled:      true,
			AuthProvider: provider,
			ProviderID:   externalID,
		}
		err = s.db.Create(&u).Error
		if err == nil {
			log.Printf("[user] provisioned %s from %s", u.Username, provider)
			return &u, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		// ชน constraint: ถ้าเป็น email แปลว่าอีก request หนึ่ง provision ไปแล้ว
		// — คืนบัญชีนั้นเพื่อให้ resolve แบบ idempotent; ถ้าเป็น username วน suffix ต่อ
		var existing models.User
		if ferr := s.db.Where("email = ?", email).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		candidate = base + strconv.Itoa(i)
	}
	return nil, ErrDuplicateIdentity
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// RegisterLocalUser สมัครบัญชี LOCAL — username/email ต้องไม่ซ้ำ
func (s *UserService) RegisterLocalUser(in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if taken, err := s.UsernameExists(in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateIdentity.msg("username already exists")
	}
	if taken, err := s.EmailExists(in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateIdentity.msg("email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := models.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         models.RoleUser,
		Enabled:      true,
		AuthProvider: models.ProviderLocal,
	}
	if err := s.db.Create(&u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate ตรวจ credentials จากฟอร์ม login
func (s *UserService) Authenticate(usernameOrEmail, password string) (*models.User, error) {
	u, err := s.findByUsernameOrEmail(usernameOrEmail)
	if err != nil {
		return nil, err
	}
	if u == nil || u.Password == "" {
		return nil, ErrUnauthenticated.msg("invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrUnauthenticated.msg("invalid username or password")
	}
	if !u.Enabled {
		return nil, ErrUnauthenticated.msg("account is disabled")
	}
	return u, nil
}

// findByUsernameOrEmail: ลอง username ก่อนแล้วค่อย email; (nil, nil) เมื่อไม่เจอ
func (s *UserService) findByUsernameOrEmail(identifier string) (*models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, nil
	}
	var u models.User
	err := s.db.Where("username = ?", identifier).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	err = s.db.Where("email = ?", strings.ToLower(identifier)).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user")
		}
		return nil, err
	}
	return &u, nil
}

func (s *UserService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) UsernameExists(username string) (bool, error) {
	var n int64
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (s *UserService) EmailExists(email string) (bool, error) {
	var n int64
	err := s.db.Model(&models.User{}).Where("email = ?", strings.ToLower(email)).Count(&n).Error
	return n > 0, err
}

// UpdateProfile แก้ชื่อ/email ของตัวเอง — เปลี่ยน email ได้ต่อเมื่อไม่ชนคนอื่น
func (s *UserService) UpdateProfile(userID uint, firstName, lastName, email string) (*models.User, error) {
	u, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(strings.ToLower(email))
	if email != "" && email != u.Email {
		if taken, err := s.EmailExists(email); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrDuplicateIdentity.msg("email already exists")
		}
		u.Email = email
	}
	u.FirstName = firstName
	u.LastName = lastName
	if err := s.db.Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateIdentity.msg("email already exists")
		}
		return nil, err
	}
	return u, nil
}

// ChangePassword ใช้ได้เฉพาะบัญชี LOCAL; บัญชี OAuth ต้องผ่าน LinkOAuthAccount ก่อน
func (s *UserService) ChangePassword(userID uint, current, next, confirm string) error {
	u, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if u.AuthProvider != models.ProviderLocal {
		return invalidOp("cannot change password for SSO accounts")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return invalidOp("current password is incorrect")
	}
	if next != confirm {
		return invalidOp("new passwords do not match")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Model(u).Update("password", string(hash)).Error
}

// LinkOAuthAccount ตั้งรหัสผ่านให้บัญชี OAuth แล้วแปลงเป็น LOCAL ใน transaction เดียว
func (s *UserService) LinkOAuthAccount(userID uint, password, confirm string) error {
	u, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if u.AuthProvider == models.ProviderLocal {
		return invalidOp("account already has local credentials")
	}
	if password != confirm {
		return invalidOp("passwords do not match")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
			"password":      string(hash),
			"auth_provider": models.ProviderLocal,
		}).Error
	})
}

// AdminResetPassword รีเซ็ตรหัสผ่านเป็นค่าใหม่แบบสุ่ม คืน one-time password
// ใช้ได้เฉพาะบัญชี LOCAL เช่นเดียวกับ ChangePassword
func (s *UserService) AdminResetPassword(userID uint) (string, error) {
	u, err := s.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	if u.AuthProvider != models.ProviderLocal {
		return "", invalidOp("cannot reset password for SSO accounts")
	}
	plain, err := randomPassword(12)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := s.db.Model(u).Update("password", string(hash)).Error; err != nil {
		return "", err
	}
	return plain, nil
}

// ToggleEnabled สลับสถานะใช้งาน — ห้ามทำกับบัญชีตัวเอง
func (s *UserService) ToggleEnabled(targetID, actorID uint) (*models.User, error) {
	if targetID == actorID {
		return nil, ErrSelfAction.msg("cannot disable your own account")
	}
	u, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	u.Enabled = !u.Enabled
	if err := s.db.Model(u).Update("enabled", u.Enabled).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateRole เปลี่ยน role (ไม่มีข้อห้าม self-change ตาม behavior เดิม)
func (s *UserService) UpdateRole(targetID uint, role string) (*models.User, error) {
	switch role {
	case models.RoleUser, models.RoleAdmin, models.RoleManager:
	default:
		return nil, invalidOp("unknown role: " + role)
	}
	u, err := s.GetUserByID(targetID)
	if err != nil {
		return nil, err
	}
	u.Role = role
	if err := s.db.Model(u).Update("role", role).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser ลบถาวร — ห้ามลบบัญชีตัวเอง; ลบ attendance/leave ของคนนั้นไปด้วย
func (s *UserService) DeleteUser(targetID, actorID uint) error {
	if targetID == actorID {
		return ErrSelfAction.msg("cannot delete your own account")
	}
	if _, err := s.GetUserByID(targetID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", targetID).Delete(&models.Leave{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, targetID).Error
	})
}
