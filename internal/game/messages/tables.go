package messages

// maxTier is the catch-all ceiling of every list's final tier.
const maxTier = 5000

func tier(threshold int, attacker, victim, observer string) Tier {
	return Tier{Threshold: threshold, Set: Set{Attacker: attacker, Victim: victim, Observer: observer}}
}

var defaultTables = map[string][]Tier{
	"blunt": {
		tier(0, "You swing at $I clumsily.", "$N swings at you, missing.", "$N swings at $I and misses."),
		tier(20, "You tap $I's $z with a light thud.", "$N taps your $z lightly.", "$N taps $I's $z with a thud."),
		tier(60, "You hit $I in the $z with force.", "$N hits your $z firmly.", "$N strikes $I in the $z."),
		tier(100, "You bruise $I's $z with a solid blow.", "$N bruises your $z painfully.", "$N bruises $I's $z."),
		tier(140, "You smash $I's $z with a hard strike.", "$N smashes your $z hard.", "$N smashes $I's $z."),
		tier(180, "You crush $I's $z with a brutal blow.", "$N crushes your $z brutally.", "$N crushes $I's $z."),
		tier(220, "You pulverize $I's $z with devastating force.", "$N pulverizes your $z.", "$N pulverizes $I's $z."),
		tier(maxTier, "You mash $I's $z into a pulp.", "$N mashes your $z into ruin.", "$N mashes $I's $z to pulp."),
	},
	"blunt-hands": {
		tier(0, "You punch at $I, missing.", "$N punches at you and misses.", "$N swings a fist at $I and misses."),
		tier(20, "You poke $I's $z with a weak jab.", "$N pokes your $z lightly.", "$N jabs $I's $z weakly."),
		tier(60, "You hit $I's $z with a solid punch.", "$N punches your $z firmly.", "$N punches $I in the $z."),
		tier(100, "You uppercut $I's $z hard.", "$N uppercuts your $z painfully.", "$N uppercuts $I's $z."),
		tier(140, "You slam $I's $z with a fierce hook.", "$N hooks your $z brutally.", "$N hooks $I's $z."),
		tier(180, "You batter $I's $z with rapid fists.", "$N batters your $z with fists.", "$N batters $I's $z."),
		tier(220, "You pummel $I's $z into submission.", "$N pummels your $z relentlessly.", "$N pummels $I's $z."),
		tier(maxTier, "You beat $I's $z to a bloody pulp.", "$N beats your $z to pulp.", "$N beats $I's $z to ruin."),
	},
	"blunt-feet": {
		tier(0, "You kick at $I, missing.", "$N kicks at you and misses.", "$N kicks at $I and misses."),
		tier(20, "You tap $I's $z with a light kick.", "$N taps your $z with a kick.", "$N kicks $I's $z lightly."),
		tier(60, "You kick $I's $z firmly.", "$N kicks your $z with force.", "$N kicks $I in the $z."),
		tier(100, "You boot $I's $z with a solid kick.", "$N boots your $z painfully.", "$N boots $I's $z."),
		tier(140, "You smash $I's $z with a hard kick.", "$N smashes your $z with a kick.", "$N smashes $I's $z."),
		tier(180, "You crush $I's $z with a vicious kick.", "$N crushes your $z with a kick.", "$N crushes $I's $z."),
		tier(220, "You shatter $I's $z with a powerful kick.", "$N shatters your $z with a kick.", "$N shatters $I's $z."),
		tier(maxTier, "You kick $I's $z into a bloody mess.", "$N kicks your $z to ruin.", "$N kicks $I's $z to pulp."),
	},
	"blunt-mace": {
		tier(0, "You swing your mace at $I, missing.", "$N swings a mace at you, missing.", "$N swings a mace at $I and misses."),
		tier(20, "You tap $I's $z with your mace.", "$N taps your $z with a mace.", "$N taps $I's $z with a mace."),
		tier(60, "You bash $I's $z with your mace.", "$N bashes your $z with a mace.", "$N bashes $I's $z."),
		tier(100, "You bruise $I's $z with a mace strike.", "$N bruises your $z with a mace.", "$N bruises $I's $z."),
		tier(140, "You smash $I's $z with a mace blow.", "$N smashes your $z with a mace.", "$N smashes $I's $z."),
		tier(180, "You crush $I's $z with your mace's weight.", "$N crushes your $z with a mace.", "$N crushes $I's $z."),
		tier(220, "You shatter $I's $z with a mace's force.", "$N shatters your $z with a mace.", "$N shatters $I's $z."),
		tier(maxTier, "You obliterate $I's $z with your mace's might.", "$N obliterates your $z with a mace.", "$N obliterates $I's $z."),
	},
	"blunt-flail": {
		tier(0, "You swing your flail at $I, missing.", "$N swings a flail at you, missing.", "$N swings a flail at $I and misses."),
		tier(20, "You tap $I's $z with a flail's chain.", "$N taps your $z with a flail.", "$N taps $I's $z with a flail."),
		tier(60, "You lash $I's $z with a flail's strike.", "$N lashes your $z with a flail.", "$N lashes $I's $z."),
		tier(100, "You whip $I's $z with a flail's force.", "$N whips your $z painfully.", "$N whips $I's $z."),
		tier(140, "You smash $I's $z with a flail's swing.", "$N smashes your $z with a flail.", "$N smashes $I's $z."),
		tier(180, "You crush $I's $z with a flail's might.", "$N crushes your $z brutally.", "$N crushes $I's $z with a flail."),
		tier(220, "You shatter $I's $z with a flail's fury.", "$N shatters your $z with a flail.", "$N shatters $I's $z."),
		tier(maxTier, "You pulverize $I's $z with a flail's wrath.", "$N pulverizes your $z to ruin.", "$N pulverizes $I's $z with a flail."),
	},
	"sharp": {
		tier(0, "You slash at $I, missing.", "$N slashes at you, missing.", "$N slashes at $I and misses."),
		tier(20, "You nick $I's $z with a glancing cut.", "$N nicks your $z lightly.", "$N nicks $I's $z."),
		tier(60, "You scratch $I's $z with a sharp edge.", "$N scratches your $z.", "$N scratches $I's $z."),
		tier(100, "You cut $I's $z with a clean slice.", "$N cuts your $z painfully.", "$N cuts $I's $z."),
		tier(140, "You slice $I's $z deeply.", "$N slices your $z with force.", "$N slices $I's $z."),
		tier(180, "You hack $I's $z with a vicious swing.", "$N hacks your $z brutally.", "$N hacks $I's $z."),
		tier(220, "You rend $I's $z with surgical precision.", "$N rends your $z apart.", "$N rends $I's $z."),
		tier(maxTier, "You chop $I's $z into bloody ribbons.", "$N chops your $z to shreds.", "$N chops $I's $z into ruin."),
	},
	"sharp-dagger": {
		tier(0, "You swipe your dagger at $I, missing.", "$N swipes a dagger at you, missing.", "$N swipes a dagger at $I and misses."),
		tier(20, "You nick $I's $z with your dagger.", "$N nicks your $z with a dagger.", "$N nicks $I's $z with a dagger."),
		tier(60, "You scratch $I's $z with your dagger.", "$N scratches your $z with a dagger.", "$N scratches $I's $z."),
		tier(100, "You cut $I's $z with a dagger's edge.", "$N cuts your $z with a dagger.", "$N cuts $I's $z."),
		tier(140, "You slice $I's $z with a dagger's thrust.", "$N slices your $z with a dagger.", "$N slices $I's $z."),
		tier(180, "You gash $I's $z with a dagger's slash.", "$N gashes your $z brutally.", "$N gashes $I's $z."),
		tier(220, "You rend $I's $z with a dagger's precision.", "$N rends your $z with a dagger.", "$N rends $I's $z."),
		tier(maxTier, "You shred $I's $z with a dagger's fury.", "$N shreds your $z to ribbons.", "$N shreds $I's $z into ruin."),
	},
	"sharp-sword": {
		tier(0, "You swing your sword at $I, missing.", "$N swings a sword at you, missing.", "$N swings a sword at $I and misses."),
		tier(20, "You graze $I's $z with your sword.", "$N grazes your $z with a sword.", "$N grazes $I's $z with a sword."),
		tier(60, "You slice $I's $z with your sword.", "$N slices your $z with a sword.", "$N slices $I's $z."),
		tier(100, "You cut $I's $z with a sword's edge.", "$N cuts your $z with a sword.", "$N cuts $I's $z."),
		tier(140, "You slash $I's $z with a sword's sweep.", "$N slashes your $z deeply.", "$N slashes $I's $z."),
		tier(180, "You hack $I's $z with a sword's might.", "$N hacks your $z brutally.", "$N hacks $I's $z."),
		tier(220, "You cleave $I's $z with a sword's force.", "$N cleaves your $z apart.", "$N cleaves $I's $z."),
		tier(maxTier, "You carve $I's $z into ribbons with your sword.", "$N carves your $z to shreds.", "$N carves $I's $z into ruin."),
	},
	"sharp-heavy_sword": {
		tier(0, "You swing your heavy sword at $I, missing.", "$N swings a heavy sword at you, missing.", "$N swings a heavy sword at $I and misses."),
		tier(20, "You nick $I's $z with your heavy sword.", "$N nicks your $z with a heavy sword.", "$N nicks $I's $z with a heavy sword."),
		tier(60, "You chop $I's $z with your heavy sword.", "$N chops your $z with a heavy sword.", "$N chops $I's $z."),
		tier(100, "You hack $I's $z with a heavy sword's weight.", "$N hacks your $z painfully.", "$N hacks $I's $z."),
		tier(140, "You cleave $I's $z with a heavy sword's swing.", "$N cleaves your $z deeply.", "$N cleaves $I's $z."),
		tier(180, "You split $I's $z with a heavy sword's force.", "$N splits your $z brutally.", "$N splits $I's $z."),
		tier(220, "You rend $I's $z with a heavy sword's might.", "$N rends your $z apart.", "$N rends $I's $z."),
		tier(maxTier, "You sunder $I's $z with a heavy sword's wrath.", "$N sunders your $z to ruin.", "$N sunders $I's $z into pieces."),
	},
	"sharp-axe": {
		tier(0, "You swing your axe at $I, missing.", "$N swings an axe at you, missing.", "$N swings an axe at $I and misses."),
		tier(20, "You nick $I's $z with your axe.", "$N nicks your $z with an axe.", "$N nicks $I's $z with an axe."),
		tier(60, "You chop $I's $z with your axe.", "$N chops your $z with an axe.", "$N chops $I's $z."),
		tier(100, "You hack $I's $z with an axe's edge.", "$N hacks your $z painfully.", "$N hacks $I's $z."),
		tier(140, "You cleave $I's $z with an axe's swing.", "$N cleaves your $z deeply.", "$N cleaves $I's $z."),
		tier(180, "You split $I's $z with an axe's might.", "$N splits your $z brutally.", "$N splits $I's $z."),
		tier(220, "You rend $I's $z with an axe's force.", "$N rends your $z apart.", "$N rends $I's $z."),
		tier(maxTier, "You chop $I's $z into chunks with your axe.", "$N chops your $z to pieces.", "$N chops $I's $z into ruin."),
	},
	"piercing": {
		tier(0, "You thrust at $I, missing.", "$N thrusts at you, missing.", "$N thrusts at $I and misses."),
		tier(20, "You jab $I's $z lightly.", "$N jabs your $z with a prick.", "$N jabs $I's $z."),
		tier(60, "You pierce $I's $z with a quick stab.", "$N pierces your $z.", "$N pierces $I's $z."),
		tier(100, "You impale $I's $z with force.", "$N impales your $z painfully.", "$N impales $I's $z."),
		tier(140, "You skewer $I's $z with a deep thrust.", "$N skewers your $z.", "$N skewers $I's $z."),
		tier(180, "You run $I through the $z with precision.", "$N runs you through the $z.", "$N runs $I through the $z."),
		tier(220, "You gore $I's $z with razored might.", "$N gores your $z brutally.", "$N gores $I's $z."),
		tier(maxTier, "You kebab $I's $z with devastating power.", "$N turns your $z into a kebab.", "$N kebabs $I's $z."),
	},
	"piercing-dagger": {
		tier(0, "You stab at $I with your dagger, missing.", "$N stabs at you with a dagger, missing.", "$N stabs at $I with a dagger and misses."),
		tier(20, "You prick $I's $z with your dagger.", "$N pricks your $z with a dagger.", "$N pricks $I's $z with a dagger."),
		tier(60, "You stab $I's $z with your dagger.", "$N stabs your $z with a dagger.", "$N stabs $I's $z."),
		tier(100, "You pierce $I's $z with a dagger's thrust.", "$N pierces your $z painfully.", "$N pierces $I's $z."),
		tier(140, "You impale $I's $z with a dagger's stab.", "$N impales your $z deeply.", "$N impales $I's $z."),
		tier(180, "You skewer $I's $z with a dagger's lunge.", "$N skewers your $z brutally.", "$N skewers $I's $z."),
		tier(220, "You gore $I's $z with a dagger's precision.", "$N gores your $z with a dagger.", "$N gores $I's $z."),
		tier(maxTier, "You run $I's $z through with your dagger.", "$N runs your $z through with a dagger.", "$N runs $I's $z through."),
	},
	"piercing-pole_arm": {
		tier(0, "You thrust your pole arm at $I, missing.", "$N thrusts a pole arm at you, missing.", "$N thrusts a pole arm at $I and misses."),
		tier(20, "You jab $I's $z with your pole arm.", "$N jabs your $z with a pole arm.", "$N jabs $I's $z with a pole arm."),
		tier(60, "You pierce $I's $z with your pole arm.", "$N pierces your $z with a pole arm.", "$N pierces $I's $z."),
		tier(100, "You impale $I's $z with a pole arm's thrust.", "$N impales your $z painfully.", "$N impales $I's $z."),
		tier(140, "You skewer $I's $z with a pole arm's lunge.", "$N skewers your $z deeply.", "$N skewers $I's $z."),
		tier(180, "You run $I through the $z with a pole arm.", "$N runs you through the $z with a pole arm.", "$N runs $I through the $z."),
		tier(220, "You gore $I's $z with a pole arm's might.", "$N gores your $z brutally.", "$N gores $I's $z."),
		tier(maxTier, "You kebab $I's $z with a pole arm's power.", "$N kebabs your $z with a pole arm.", "$N kebabs $I's $z."),
	},
	"magic-fire": {
		tier(0, "You hurl fire at $I, but it fizzles.", "$N's fire fizzles before you.", "$N's fire fails against $I."),
		tier(20, "You singe $I's $z with a spark of flame.", "$N singes your $z with flame.", "$N singes $I's $z."),
		tier(60, "You scorch $I's $z with a burst of fire.", "$N scorches your $z with fire.", "$N scorches $I's $z."),
		tier(100, "You burn $I's $z with a fiery blast.", "$N burns your $z painfully.", "$N burns $I's $z."),
		tier(140, "You roast $I's $z with roaring flames.", "$N roasts your $z with fire.", "$N roasts $I's $z."),
		tier(180, "You char $I's $z with intense heat.", "$N chars your $z brutally.", "$N chars $I's $z."),
		tier(220, "You incinerate $I's $z with arcane fire.", "$N incinerates your $z.", "$N incinerates $I's $z."),
		tier(maxTier, "You cremate $I's $z with an inferno.", "$N cremates your $z to ash.", "$N cremates $I's $z."),
	},
	"magic-cold": {
		tier(0, "You cast cold at $I, but it fades.", "$N's cold fades before you.", "$N's cold fails against $I."),
		tier(20, "You chill $I's $z with a frosty touch.", "$N chills your $z lightly.", "$N chills $I's $z."),
		tier(60, "You freeze $I's $z with icy shards.", "$N freezes your $z with ice.", "$N freezes $I's $z."),
		tier(100, "You frost $I's $z with a cold blast.", "$N frosts your $z painfully.", "$N frosts $I's $z."),
		tier(140, "You numb $I's $z with biting frost.", "$N numbs your $z with cold.", "$N numbs $I's $z."),
		tier(180, "You shatter $I's $z with icy power.", "$N shatters your $z with ice.", "$N shatters $I's $z."),
		tier(220, "You encase $I's $z in arcane ice.", "$N encases your $z in ice.", "$N encases $I's $z."),
		tier(maxTier, "You freeze $I's $z solid.", "$N freezes your $z solid.", "$N freezes $I's $z solid."),
	},
	"magic-lightning": {
		tier(0, "You hurl lightning at $I, but it sparks out.", "$N's lightning sparks out before you.", "$N's lightning fails against $I."),
		tier(20, "You zap $I's $z with a faint jolt.", "$N zaps your $z lightly.", "$N zaps $I's $z."),
		tier(60, "You shock $I's $z with a bolt of lightning.", "$N shocks your $z with lightning.", "$N shocks $I's $z."),
		tier(100, "You jolt $I's $z with an electric surge.", "$N jolts your $z painfully.", "$N jolts $I's $z."),
		tier(140, "You blast $I's $z with crackling lightning.", "$N blasts your $z with lightning.", "$N blasts $I's $z."),
		tier(180, "You fry $I's $z with a thunderous arc.", "$N fries your $z brutally.", "$N fries $I's $z."),
		tier(220, "You electrify $I's $z with arcane power.", "$N electrifies your $z.", "$N electrifies $I's $z."),
		tier(maxTier, "You vaporize $I's $z with a storm's fury.", "$N vaporizes your $z with lightning.", "$N vaporizes $I's $z."),
	},
}
