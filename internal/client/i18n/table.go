package i18n

var table = map[Locale]map[string]string{
	Arabic: {
		"app_title":            "أرباح الإعلانات",
		"ads":                  "الإعلانات",
		"mining":               "التعدين",
		"vip":                  "VIP",
		"referral":             "الإحالة",
		"withdraw":             "سحب",
		"balance":              "الرصيد",
		"ads_today":            "إعلانات اليوم",
		"ad_reward":            "مكافأة الإعلان",
		"watch_ad":             "شاهد إعلان",
		"daily_limit":          "تم الوصول إلى الحد اليومي",
		"ads_count":            "إعلان",
		"next_vip":             "للمستوى التالي",
		"vip_levels":           "مستويات VIP",
		"vip_max":              "لقد وصلت إلى أعلى مستوى",
		"mining_wheel":         "عجلة التعدين",
		"mining_locked":        "التعدين مقفل",
		"mining_unlock_hint":   "شاهد 10000 إعلان لفتح التعدين",
		"deposit":              "إيداع",
		"deposit_range":        "المبلغ يجب أن يكون بين 1$ و 10$",
		"deposit_locked":       "الإيداع مقفل (24 ساعة)",
		"withdraw_deposit":     "سحب الإيداع",
		"spin":                 "تدوير",
		"spin_cooldown":        "انتظار 24 ساعة",
		"referral_code":        "رمز الإحالة",
		"referral_earnings":    "أرباح الإحالة",
		"referral_hint":        "اربح 10% من أرباح أصدقائك من الإعلانات للأبد!",
		"friends":              "الأصدقاء",
		"no_friends":           "لا يوجد أصدقاء بعد",
		"friends_load_failed":  "فشل تحميل قائمة الأصدقاء",
		"invite_link":          "رابط الدعوة",
		"share_text":           "انضم إلي واربح العملات الرقمية! استخدم رمزي:",
		"redeem_code":          "استخدم رمز الدعوة",
		"withdraw_title":       "طلب سحب",
		"wallet_address":       "عنوان المحفظة",
		"network":              "الشبكة",
		"amount":               "المبلغ",
		"min_withdraw":         "الحد الأدنى 1$",
		"max_withdraw":         "الحد الأقصى 25$",
		"insufficient_balance": "رصيد غير كاف",
		"withdraw_success":     "تم طلب السحب بنجاح!",
		"success":              "تم بنجاح",
		"error":                "حدث خطأ",
		"loading":              "جار التحميل...",
		"loading_slow":         "التحميل يستغرق وقتا أطول من المعتاد",
		"try_again":            "حاول مرة أخرى",
		"retry":                "إعادة المحاولة",
		"logout":               "تسجيل الخروج",
		"reset":                "مسح البيانات وإعادة التشغيل",
		"login":                "تسجيل الدخول",
		"register":             "إنشاء حساب",
		"email":                "البريد الإلكتروني",
		"password":             "كلمة المرور",
		"empty_credentials":    "البريد الإلكتروني وكلمة المرور مطلوبان",
		"profile_error":        "تعذر تحميل ملفك الشخصي",
		"language":             "اللغة",
		"cooldown_active":      "يرجى الانتظار حتى انتهاء فترة الانتظار",
		"invalid_code":         "رمز الدعوة غير صالح",
		"self_referral":        "لا يمكنك استخدام رمزك الخاص",
		"already_referred":     "لقد استخدمت رمز دعوة بالفعل",
		"daily_limit_reached":  "تم الوصول إلى الحد اليومي للإعلانات",
		"invalid_amount":       "مبلغ غير صالح",
		"action_in_progress":   "العملية قيد التنفيذ",
		"signups_disabled":     "التسجيل معطل على الخادم",
		"connection_error":     "خطأ في الاتصال",
		"deposit_required":     "يلزم إيداع 1$ على الأقل للدوران",
		"invalid_address":      "عنوان المحفظة مطلوب",
		"invalid_network":      "شبكة غير مدعومة",
		"session_expired":      "انتهت الجلسة، يرجى تسجيل الدخول",
		"confirmation_required": "الخادم يتطلب تأكيد البريد الإلكتروني",
	},
	English: {
		"app_title":            "Ad Earnings",
		"ads":                  "Ads",
		"mining":               "Mining",
		"vip":                  "VIP",
		"referral":             "Referral",
		"withdraw":             "Withdraw",
		"balance":              "Balance",
		"ads_today":            "Ads today",
		"ad_reward":            "Ad reward",
		"watch_ad":             "Watch ad",
		"daily_limit":          "Daily limit reached",
		"ads_count":            "ads",
		"next_vip":             "to next level",
		"vip_levels":           "VIP levels",
		"vip_max":              "You reached the top level",
		"mining_wheel":         "Mining wheel",
		"mining_locked":        "Mining locked",
		"mining_unlock_hint":   "Watch 10000 ads to unlock mining",
		"deposit":              "Deposit",
		"deposit_range":        "Amount must be between $1 and $10",
		"deposit_locked":       "Deposit locked (24h)",
		"withdraw_deposit":     "Withdraw deposit",
		"spin":                 "Spin",
		"spin_cooldown":        "24h cooldown",
		"referral_code":        "Referral code",
		"referral_earnings":    "Referral earnings",
		"referral_hint":        "Earn 10% from your friends' ad earnings forever!",
		"friends":              "Friends",
		"no_friends":           "No friends yet",
		"friends_load_failed":  "Failed to load friends list",
		"invite_link":          "Invite link",
		"share_text":           "Join me and earn crypto! Use my code:",
		"redeem_code":          "Redeem invite code",
		"withdraw_title":       "Request withdrawal",
		"wallet_address":       "Wallet address",
		"network":              "Network",
		"amount":               "Amount",
		"min_withdraw":         "Min $1",
		"max_withdraw":         "Max $25",
		"insufficient_balance": "Insufficient balance",
		"withdraw_success":     "Withdrawal requested successfully!",
		"success":              "Done",
		"error":                "Something went wrong",
		"loading":              "Loading...",
		"loading_slow":         "Loading is taking longer than usual",
		"try_again":            "Try again",
		"retry":                "Retry",
		"logout":               "Log out",
		"reset":                "Clear local data and restart",
		"login":                "Log in",
		"register":             "Sign up",
		"email":                "Email",
		"password":             "Password",
		"empty_credentials":    "Email and password are required",
		"profile_error":        "Could not load your profile",
		"language":             "Language",
		"cooldown_active":      "Please wait for the cooldown to end",
		"invalid_code":         "Invalid invite code",
		"self_referral":        "You cannot use your own code",
		"already_referred":     "You already used an invite code",
		"daily_limit_reached":  "Daily ad limit reached",
		"invalid_amount":       "Invalid amount",
		"action_in_progress":   "Already in progress",
		"signups_disabled":     "Sign-ups are disabled on the server",
		"connection_error":     "Connection error",
		"deposit_required":     "Deposit at least $1 to spin",
		"invalid_address":      "Wallet address is required",
		"invalid_network":      "Unsupported network",
		"session_expired":      "Session expired, please log in",
		"confirmation_required": "The server requires email confirmation",
	},
	Russian: {
		"app_title":            "Заработок на рекламе",
		"ads":                  "Реклама",
		"mining":               "Майнинг",
		"vip":                  "VIP",
		"referral":             "Рефералы",
		"withdraw":             "Вывод",
		"balance":              "Баланс",
		"ads_today":            "Реклам сегодня",
		"ad_reward":            "Награда за рекламу",
		"watch_ad":             "Смотреть рекламу",
		"daily_limit":          "Дневной лимит исчерпан",
		"ads_count":            "реклам",
		"next_vip":             "до следующего уровня",
		"vip_levels":           "Уровни VIP",
		"vip_max":              "Вы достигли максимального уровня",
		"mining_wheel":         "Колесо майнинга",
		"mining_locked":        "Майнинг закрыт",
		"mining_unlock_hint":   "Посмотрите 10000 реклам, чтобы открыть майнинг",
		"deposit":              "Депозит",
		"deposit_range":        "Сумма должна быть от $1 до $10",
		"deposit_locked":       "Депозит заблокирован (24ч)",
		"withdraw_deposit":     "Вывести депозит",
		"spin":                 "Крутить",
		"spin_cooldown":        "Перерыв 24ч",
		"referral_code":        "Реферальный код",
		"referral_earnings":    "Реферальный доход",
		"referral_hint":        "Получайте 10% от рекламного дохода друзей навсегда!",
		"friends":              "Друзья",
		"no_friends":           "Пока нет друзей",
		"friends_load_failed":  "Не удалось загрузить список друзей",
		"invite_link":          "Пригласительная ссылка",
		"share_text":           "Присоединяйся и зарабатывай крипту! Мой код:",
		"redeem_code":          "Ввести код приглашения",
		"withdraw_title":       "Запросить вывод",
		"wallet_address":       "Адрес кошелька",
		"network":              "Сеть",
		"amount":               "Сумма",
		"min_withdraw":         "Мин. $1",
		"max_withdraw":         "Макс. $25",
		"insufficient_balance": "Недостаточно средств",
		"withdraw_success":     "Запрос на вывод отправлен!",
		"success":              "Готово",
		"error":                "Что-то пошло не так",
		"loading":              "Загрузка...",
		"loading_slow":         "Загрузка занимает больше времени, чем обычно",
		"try_again":            "Попробовать снова",
		"retry":                "Повторить",
		"logout":               "Выйти",
		"reset":                "Очистить данные и перезапустить",
		"login":                "Войти",
		"register":             "Регистрация",
		"email":                "Эл. почта",
		"password":             "Пароль",
		"empty_credentials":    "Введите эл. почту и пароль",
		"profile_error":        "Не удалось загрузить профиль",
		"language":             "Язык",
		"cooldown_active":      "Подождите окончания перерыва",
		"invalid_code":         "Неверный код приглашения",
		"self_referral":        "Нельзя использовать свой код",
		"already_referred":     "Вы уже использовали код приглашения",
		"daily_limit_reached":  "Дневной лимит рекламы исчерпан",
		"invalid_amount":       "Неверная сумма",
		"action_in_progress":   "Операция уже выполняется",
		"signups_disabled":     "Регистрация отключена на сервере",
		"connection_error":     "Ошибка соединения",
		"deposit_required":     "Для вращения нужен депозит от $1",
		"invalid_address":      "Укажите адрес кошелька",
		"invalid_network":      "Сеть не поддерживается",
		"session_expired":      "Сессия истекла, войдите снова",
		"confirmation_required": "Сервер требует подтверждения почты",
	},
}
