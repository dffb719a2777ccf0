package constant

// FirstQuestionTemplate opens every guided analysis conversation. The
// {studentName} placeholder is substituted before sending.
const FirstQuestionTemplate = `שלום! בואו ננתח את {studentName}. כדי ליצור ניתוח מקיף, אשאל אותך מספר שאלות על התלמיד/ה.

**שאלה 1 מתוך 6:**
כיצד היית מתאר/ת את הביצועים האקדמיים הכוללים של {studentName} במקצועות השונים? באילו מקצועות הוא/היא מצטיין/ת, ובאילו מקצועות יש קשיים?`

// QuestionTemplates are the canned follow-up questions used when no LLM
// provider is configured. The conversation's questionCount is used directly
// as the index, so a conversation with one question asked gets index 1.
var QuestionTemplates = []string{
	"תודה! זה מאוד מועיל.\n\n**שאלה 2 מתוך 6:**\nכיצד {studentName} בדרך כלל מתקשר/ת עם השיעורים? האם הוא/היא לומד/ת בצורה ויזואלית, שמיעתית, או קינסטטית יותר? תאר/י את ההשתתפות שלו/שלה בדיונים בכיתה ובפעילויות קבוצתיות.",
	"מעולה, תובנות חשובות.\n\n**שאלה 3 מתוך 6:**\nספר/י לי על הרגלי השיעורים הביתיים וההתנהגות של {studentName}. האם הוא/היא משלים/ה משימות בזמן? כיצד היית מתאר/ת את ההתנהגות שלו/שלה בכיתה - ממוקד/ת, מתוסכל/ת בקלות, או משהו באמצע?",
	"תודה על המידע.\n\n**שאלה 4 מתוך 6:**\nכיצד {studentName} מתקשר/ת עם חברי הכיתה? האם הוא/היא עובד/ת היטב בקבוצות? האם שמת/ת לב לדפוסים רגשיים או התנהגותיים שמשפיעים על הלמידה שלו/שלה?",
	"מצוין, זה מאוד עוזר.\n\n**שאלה 5 מתוך 6:**\nמה האתגרים העיקריים שעומדים בפני {studentName} בלמידה? האם שמת/ת לב לשיפורים או שינויים לאחרונה בביצועיו/ביצועיה?",
	"תובנות נהדרות, כמעט סיימנו!\n\n**שאלה 6 מתוך 6:**\nאילו חוזקות או כישרונות ייחודיים שמת/ת לב אצל {studentName}? האם יש עוד משהו חשוב עליו/עליה שיכול לעזור ביצירת תוכנית למידה מותאמת אישית?",
}

// ClosingMessage is served once the template sequence is exhausted.
const ClosingMessage = `תודה רבה על כל המידע המפורט! יש לי תמונה ברורה של {studentName}.

לחץ/י על כפתור "השלם ניתוח" כדי לקבל ניתוח מקיף עם המלצות ספציפיות לתלמיד/ה.`

// DefaultSystemPrompt is the built-in interview prompt used when the prompt
// file configured by ANALYSIS_PROMPT_PATH cannot be read.
const DefaultSystemPrompt = `You are an expert educational psychologist for K-12 students. Your role is to help teachers analyze individual student learning profiles.

PROCESS:
1. When given a student name, ask 6 key questions one at a time:
   - Overall academic performance and subject strengths/weaknesses
   - Learning style and class engagement
   - Homework habits and behavior
   - Social interactions and emotional patterns
   - Main learning challenges and recent progress
   - Unique strengths and additional observations

2. After gathering responses, provide a comprehensive Hebrew analysis with:
   - Summary (2-3 sentences)
   - Strengths (academic + behavioral/social)
   - Areas for improvement (academic + behavioral/emotional)
   - Action plan (immediate + long-term recommendations)
   - Classroom adaptations (seating, teaching style, materials)
   - Success metrics and follow-up timeline

FORMAT: Use clear Hebrew headers with emojis (📊 💪 🎯 📈 🎓 💡), bullet points, and specific actionable steps.

TONE: Empathetic, strengths-first, growth-oriented, evidence-based. Focus on what the student CAN do and how to build from there.

OUTPUT LANGUAGE: Hebrew only

CURRENT STUDENT: {studentName}`
